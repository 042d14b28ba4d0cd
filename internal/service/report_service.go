package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/pkg/apperrors"
)

type reportRepository interface {
	Totals(ctx context.Context) (*models.SchoolTotals, error)
	ReliabilityRows(ctx context.Context) ([]models.ReliabilityRow, error)
	ReliabilityRowForStudent(ctx context.Context, studentID string) (*models.ReliabilityRow, error)
	DebtRows(ctx context.Context) ([]models.DebtRow, error)
	RevenueByCourse(ctx context.Context) ([]models.CourseMetric, error)
	EnrollmentByCourse(ctx context.Context) ([]models.CourseMetric, error)
}

// ErrInsufficientData marks a student with no attendance and no billed fees,
// for whom no reliability score can be computed.
var ErrInsufficientData = apperrors.New(apperrors.KindValidation, "not enough data to compute a score")

// ReportService derives the analytics screens from ledger and attendance
// aggregates.
type ReportService struct {
	reports reportRepository
	logger  *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(reports reportRepository, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{reports: reports, logger: logger}
}

// ReliabilityReport ranks every scorable student and carries the cohort
// average. Skipped counts students with no attendance and no billed fees.
type ReliabilityReport struct {
	Scores  []models.ReliabilityScore
	Average float64
	Skipped int
}

// Reliability computes the composite score for every student, ranked from
// highest to lowest. Students missing attendance records or billed fees
// are skipped rather than scored as zero.
func (s *ReportService) Reliability(ctx context.Context) (*ReliabilityReport, error) {
	rows, err := s.reports.ReliabilityRows(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load reliability data")
	}

	report := &ReliabilityReport{}
	var sum float64
	for _, row := range rows {
		score, err := scoreFromRow(row)
		if err != nil {
			report.Skipped++
			continue
		}
		report.Scores = append(report.Scores, *score)
		sum += score.Score
	}
	sort.SliceStable(report.Scores, func(i, j int) bool {
		return report.Scores[i].Score > report.Scores[j].Score
	})
	if len(report.Scores) > 0 {
		report.Average = sum / float64(len(report.Scores))
	}
	return report, nil
}

// StudentScore computes the composite score for one student.
func (s *ReportService) StudentScore(ctx context.Context, studentID string) (*models.ReliabilityScore, error) {
	row, err := s.reports.ReliabilityRowForStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "student not found")
		}
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load reliability data")
	}
	return scoreFromRow(*row)
}

// scoreFromRow derives the composite metric. Both sides must have data:
// a student with no attendance records or no billed fees has no score.
func scoreFromRow(row models.ReliabilityRow) (*models.ReliabilityScore, error) {
	if row.AttendanceTotal == 0 || row.TotalDue == 0 {
		return nil, ErrInsufficientData
	}

	attendanceRate := float64(row.PresentCount) / float64(row.AttendanceTotal) * 100
	paymentRate := row.TotalPaid / row.TotalDue * 100

	score := (attendanceRate + paymentRate) / 2
	return &models.ReliabilityScore{
		StudentID:      row.StudentID,
		StudentName:    row.StudentName,
		AttendanceRate: attendanceRate,
		PaymentRate:    paymentRate,
		Score:          score,
		Grade:          models.GradeFor(score),
	}, nil
}

// DebtReport lists debtors largest first with the school-wide total.
type DebtReport struct {
	Rows       []models.DebtRow
	GrandTotal float64
}

// DebtList returns every student carrying unsettled entries.
func (s *ReportService) DebtList(ctx context.Context) (*DebtReport, error) {
	rows, err := s.reports.DebtRows(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load debt report")
	}
	report := &DebtReport{Rows: rows}
	for _, row := range rows {
		report.GrandTotal += row.TotalDebt
	}
	return report, nil
}

// ExecutiveReport is the data behind the admin dashboard.
type ExecutiveReport struct {
	Totals           models.SchoolTotals
	RevenueByCourse  []models.CourseMetric
	StudentsByCourse []models.CourseMetric
}

// ExecutiveStats assembles the headline figures and per-course breakdowns.
func (s *ReportService) ExecutiveStats(ctx context.Context) (*ExecutiveReport, error) {
	totals, err := s.reports.Totals(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load school totals")
	}
	revenue, err := s.reports.RevenueByCourse(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load revenue breakdown")
	}
	enrollment, err := s.reports.EnrollmentByCourse(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load enrollment breakdown")
	}
	return &ExecutiveReport{
		Totals:           *totals,
		RevenueByCourse:  revenue,
		StudentsByCourse: enrollment,
	}, nil
}

// BarLengths scales metric values to character counts for a console bar
// chart. The largest value fills width; a non-zero value always gets at
// least one character.
func BarLengths(metrics []models.CourseMetric, width int) []int {
	lengths := make([]int, len(metrics))
	var max float64
	for _, m := range metrics {
		if m.Value > max {
			max = m.Value
		}
	}
	if max == 0 {
		return lengths
	}
	for i, m := range metrics {
		n := int(m.Value / max * float64(width))
		if n == 0 && m.Value > 0 {
			n = 1
		}
		lengths[i] = n
	}
	return lengths
}
