package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets and payment receipts.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a tabular PDF document from the dataset.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(data.Title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	colWidth := 190.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for c := 0; c < len(data.Headers); c++ {
			var value string
			if c < len(row) {
				value = row[c]
			}
			pdf.CellFormat(colWidth, 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Receipt carries the fields printed on a payment receipt.
type Receipt struct {
	TransactionRef string
	StudentName    string
	FeeName        string
	Amount         float64
	Remaining      float64
	PaidAt         time.Time
}

// RenderReceipt creates a one-page receipt for a recorded payment.
func (e *PDFExporter) RenderReceipt(receipt Receipt) ([]byte, error) {
	if receipt.TransactionRef == "" {
		return nil, fmt.Errorf("receipt requires a transaction reference")
	}
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	lines := [][2]string{
		{"Transaction", receipt.TransactionRef},
		{"Student", receipt.StudentName},
		{"Fee", receipt.FeeName},
		{"Amount paid", fmt.Sprintf("%.2f", receipt.Amount)},
		{"Remaining balance", fmt.Sprintf("%.2f", receipt.Remaining)},
		{"Date", receipt.PaidAt.Format("2006-01-02 15:04")},
	}
	for _, line := range lines {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 8, line[0], "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, line[1], "", 1, "", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, "Keep this receipt for your records.", "", 1, "C", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
