package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/pkg/apperrors"
	"github.com/irfanhanif/sfams/pkg/export"
)

// Format selects an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ExportService turns report data into files under the export directory.
type ExportService struct {
	dir    string
	csv    *export.CSVExporter
	xlsx   *export.XLSXExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the service. Files land in dir, created on
// first use.
func NewExportService(dir string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		dir:    dir,
		csv:    export.NewCSVExporter(),
		xlsx:   export.NewXLSXExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// TransactionsDataset shapes the full payment history for export.
func TransactionsDataset(payments []models.PaymentDetail) export.Dataset {
	data := export.Dataset{
		Title:   "Transactions",
		Headers: []string{"Reference", "Student", "Fee", "Amount", "Paid At"},
	}
	for _, p := range payments {
		data.Rows = append(data.Rows, []string{
			p.TransactionRef,
			p.StudentName,
			p.FeeName,
			fmt.Sprintf("%.2f", p.Amount),
			p.PaidAt.Format("2006-01-02 15:04"),
		})
	}
	return data
}

// DebtDataset shapes the outstanding-debt report for export.
func DebtDataset(report *DebtReport) export.Dataset {
	data := export.Dataset{
		Title:   "Outstanding Debt",
		Headers: []string{"Student", "Total Debt"},
	}
	for _, row := range report.Rows {
		data.Rows = append(data.Rows, []string{row.StudentName, fmt.Sprintf("%.2f", row.TotalDebt)})
	}
	data.Rows = append(data.Rows, []string{"TOTAL", fmt.Sprintf("%.2f", report.GrandTotal)})
	return data
}

// ReliabilityDataset shapes the ranked reliability roster for export.
func ReliabilityDataset(report *ReliabilityReport) export.Dataset {
	data := export.Dataset{
		Title:   "Student Reliability",
		Headers: []string{"Rank", "Student", "Attendance %", "Payment %", "Score", "Grade"},
	}
	for i, score := range report.Scores {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(i + 1),
			score.StudentName,
			fmt.Sprintf("%.1f", score.AttendanceRate),
			fmt.Sprintf("%.1f", score.PaymentRate),
			fmt.Sprintf("%.1f", score.Score),
			string(score.Grade),
		})
	}
	return data
}

// StudentsDataset shapes the student directory for export.
func StudentsDataset(students []models.Student) export.Dataset {
	data := export.Dataset{
		Title:   "Students",
		Headers: []string{"ID", "Full Name", "Username", "Email", "Registered"},
	}
	for _, s := range students {
		data.Rows = append(data.Rows, []string{
			s.ID, s.FullName, s.Username, s.Email, s.CreatedAt.Format("2006-01-02"),
		})
	}
	return data
}

// Save renders the dataset in the requested format and writes it to the
// export directory. It returns the path of the written file.
func (s *ExportService) Save(data export.Dataset, name string, format Format) (string, error) {
	var (
		payload []byte
		err     error
	)
	switch format {
	case FormatCSV:
		payload, err = s.csv.Render(data)
	case FormatXLSX:
		payload, err = s.xlsx.Render(data)
	case FormatPDF:
		payload, err = s.pdf.Render(data)
	default:
		return "", apperrors.Clone(apperrors.ErrValidation, "unknown export format")
	}
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindPersistence, "failed to render export")
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.%s", name, time.Now().Format("20060102_150405"), format))
	if err := s.write(path, payload); err != nil {
		return "", err
	}
	s.logger.Info("export written", zap.String("path", path), zap.String("format", string(format)))
	return path, nil
}

// SaveReceipt writes a PDF receipt for a recorded payment.
func (s *ExportService) SaveReceipt(payment *models.Payment, studentName, feeName string, remaining float64) (string, error) {
	payload, err := s.pdf.RenderReceipt(export.Receipt{
		TransactionRef: payment.TransactionRef,
		StudentName:    studentName,
		FeeName:        feeName,
		Amount:         payment.Amount,
		Remaining:      remaining,
		PaidAt:         payment.PaidAt,
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindPersistence, "failed to render receipt")
	}
	path := filepath.Join(s.dir, fmt.Sprintf("receipt_%s.pdf", payment.TransactionRef))
	if err := s.write(path, payload); err != nil {
		return "", err
	}
	s.logger.Info("receipt written", zap.String("path", path))
	return path, nil
}

func (s *ExportService) write(path string, payload []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return apperrors.Wrap(err, apperrors.KindPersistence, "failed to create export directory")
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.KindPersistence, "failed to write export file")
	}
	return nil
}
