// Package ui renders the interactive screens. It owns stdout and stdin;
// all business decisions stay in the service layer.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/irfanhanif/sfams/pkg/apperrors"
)

// Console reads prompts from a line-based input and writes to out.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole constructs a console over the given streams.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Printf writes a formatted line fragment.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes one line.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// Prompt asks for one line of input.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	return c.readLine()
}

// PromptFloat asks until a number is entered.
func (c *Console) PromptFloat(label string) (float64, error) {
	for {
		raw, err := c.Prompt(label)
		if err != nil {
			return 0, err
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return value, nil
		}
		c.Println("Please enter a number.")
	}
}

// PromptInt asks until an integer is entered.
func (c *Console) PromptInt(label string) (int, error) {
	for {
		raw, err := c.Prompt(label)
		if err != nil {
			return 0, err
		}
		value, err := strconv.Atoi(raw)
		if err == nil {
			return value, nil
		}
		c.Println("Please enter a whole number.")
	}
}

// Choose renders a numbered option list and returns the chosen index.
// Invalid input re-prompts.
func (c *Console) Choose(title string, options []string) (int, error) {
	c.Println()
	c.Println("=== " + title + " ===")
	for i, option := range options {
		c.Printf("  %d. %s\n", i+1, option)
	}
	for {
		raw, err := c.Prompt("Select")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(raw)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		c.Printf("Enter a number between 1 and %d.\n", len(options))
	}
}

// ShowError prints a typed error in user terms.
func (c *Console) ShowError(err error) {
	e := apperrors.FromError(err)
	if e.Kind == apperrors.KindPersistence {
		c.Println("! Something went wrong. Please try again.")
		return
	}
	c.Println("! " + e.Message)
}

// Table prints an aligned text table.
func (c *Console) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var line strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&line, "%-*s  ", widths[i], h)
	}
	c.Println(strings.TrimRight(line.String(), " "))
	line.Reset()
	for i := range headers {
		line.WriteString(strings.Repeat("-", widths[i]) + "  ")
	}
	c.Println(strings.TrimRight(line.String(), " "))
	for _, row := range rows {
		line.Reset()
		for i := 0; i < len(headers); i++ {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprintf(&line, "%-*s  ", widths[i], cell)
		}
		c.Println(strings.TrimRight(line.String(), " "))
	}
}

// BarChart prints labeled horizontal bars with the given lengths.
func (c *Console) BarChart(labels []string, values []string, lengths []int) {
	labelWidth := 0
	for _, l := range labels {
		if len(l) > labelWidth {
			labelWidth = len(l)
		}
	}
	for i := range labels {
		bar := strings.Repeat("#", lengths[i])
		c.Printf("%-*s | %s %s\n", labelWidth, labels[i], bar, values[i])
	}
}
