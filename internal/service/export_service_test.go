package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanhanif/sfams/internal/models"
)

func TestExportServiceSaveCSV(t *testing.T) {
	dir := t.TempDir()
	svc := NewExportService(dir, nil)

	data := TransactionsDataset([]models.PaymentDetail{{
		Payment: models.Payment{
			TransactionRef: "PAY-abc",
			Amount:         500,
			PaidAt:         time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		StudentName: "Ada Lovelace",
		FeeName:     "Tuition: Algorithms",
	}})

	path, err := svc.Save(data, "transactions", FormatCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".csv"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "PAY-abc")
	assert.Contains(t, string(content), "Ada Lovelace")
}

func TestExportServiceSaveUnknownFormat(t *testing.T) {
	svc := NewExportService(t.TempDir(), nil)

	_, err := svc.Save(TransactionsDataset(nil), "transactions", Format("doc"))
	require.Error(t, err)
}

func TestExportServiceSaveReceipt(t *testing.T) {
	dir := t.TempDir()
	svc := NewExportService(dir, nil)

	payment := &models.Payment{
		TransactionRef: "PAY-abc",
		Amount:         500,
		PaidAt:         time.Now(),
	}
	path, err := svc.SaveReceipt(payment, "Ada Lovelace", "Tuition: Algorithms", 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "receipt_PAY-abc.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
