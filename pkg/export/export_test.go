package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Student", "Amount"},
		Rows: [][]string{
			{"Ada Lovelace", "500.00"},
			{"Blaise Pascal", "150.00"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Student,Amount\nAda Lovelace,500.00\nBlaise Pascal,150.00\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestXLSXExporterRender(t *testing.T) {
	data := Dataset{
		Title:   "Transactions",
		Headers: []string{"Reference", "Amount"},
		Rows:    [][]string{{"PAY-1", "500.00"}},
	}

	out, err := NewXLSXExporter().Render(data)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	// XLSX files are zip archives.
	assert.Equal(t, "PK", string(out[:2]))
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Title:   "Debt",
		Headers: []string{"Student", "Outstanding"},
		Rows:    [][]string{{"Ada Lovelace", "400.00"}},
	}

	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFExporterRenderReceipt(t *testing.T) {
	out, err := NewPDFExporter().RenderReceipt(Receipt{
		TransactionRef: "PAY-abc",
		StudentName:    "Ada Lovelace",
		FeeName:        "Tuition: Algorithms",
		Amount:         500,
		Remaining:      0,
		PaidAt:         time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFExporterReceiptRequiresRef(t *testing.T) {
	_, err := NewPDFExporter().RenderReceipt(Receipt{})
	require.Error(t, err)
}
