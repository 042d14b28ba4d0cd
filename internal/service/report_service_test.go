package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanhanif/sfams/internal/models"
)

type mockReportRepo struct {
	totals     *models.SchoolTotals
	rows       []models.ReliabilityRow
	studentRow *models.ReliabilityRow
	studentErr error
	debts      []models.DebtRow
	revenue    []models.CourseMetric
	enrollment []models.CourseMetric
}

func (m *mockReportRepo) Totals(ctx context.Context) (*models.SchoolTotals, error) {
	return m.totals, nil
}

func (m *mockReportRepo) ReliabilityRows(ctx context.Context) ([]models.ReliabilityRow, error) {
	return m.rows, nil
}

func (m *mockReportRepo) ReliabilityRowForStudent(ctx context.Context, studentID string) (*models.ReliabilityRow, error) {
	if m.studentErr != nil {
		return nil, m.studentErr
	}
	return m.studentRow, nil
}

func (m *mockReportRepo) DebtRows(ctx context.Context) ([]models.DebtRow, error) {
	return m.debts, nil
}

func (m *mockReportRepo) RevenueByCourse(ctx context.Context) ([]models.CourseMetric, error) {
	return m.revenue, nil
}

func (m *mockReportRepo) EnrollmentByCourse(ctx context.Context) ([]models.CourseMetric, error) {
	return m.enrollment, nil
}

func TestReportServiceReliabilityRanksAndSkips(t *testing.T) {
	repo := &mockReportRepo{rows: []models.ReliabilityRow{
		{StudentID: "stu-1", StudentName: "Ada", PresentCount: 9, AttendanceTotal: 10, TotalPaid: 500, TotalDue: 500},
		{StudentID: "stu-2", StudentName: "Blaise", PresentCount: 5, AttendanceTotal: 10, TotalPaid: 250, TotalDue: 500},
		{StudentID: "stu-3", StudentName: "Carl", PresentCount: 0, AttendanceTotal: 0, TotalPaid: 0, TotalDue: 0},
		{StudentID: "stu-4", StudentName: "Dana", PresentCount: 10, AttendanceTotal: 10, TotalPaid: 0, TotalDue: 0},
	}}
	svc := NewReportService(repo, nil)

	report, err := svc.Reliability(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Scores, 2)
	assert.Equal(t, 2, report.Skipped)

	assert.Equal(t, "Ada", report.Scores[0].StudentName)
	assert.InDelta(t, 95.0, report.Scores[0].Score, 0.001)
	assert.Equal(t, models.GradeS, report.Scores[0].Grade)

	assert.Equal(t, "Blaise", report.Scores[1].StudentName)
	assert.InDelta(t, 50.0, report.Scores[1].Score, 0.001)
	assert.Equal(t, models.GradeC, report.Scores[1].Grade)

	assert.InDelta(t, 72.5, report.Average, 0.001)
}

func TestReportServiceStudentScoreInsufficientData(t *testing.T) {
	repo := &mockReportRepo{studentRow: &models.ReliabilityRow{StudentID: "stu-1"}}
	svc := NewReportService(repo, nil)

	_, err := svc.StudentScore(context.Background(), "stu-1")
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestReportServiceStudentScoreSingleSidedData(t *testing.T) {
	tests := []struct {
		name string
		row  models.ReliabilityRow
	}{
		{"attendance only", models.ReliabilityRow{StudentID: "stu-1", PresentCount: 8, AttendanceTotal: 10}},
		{"fees only", models.ReliabilityRow{StudentID: "stu-1", TotalPaid: 250, TotalDue: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := tt.row
			svc := NewReportService(&mockReportRepo{studentRow: &row}, nil)

			_, err := svc.StudentScore(context.Background(), "stu-1")
			require.ErrorIs(t, err, ErrInsufficientData)
		})
	}
}

func TestReportServiceDebtListGrandTotal(t *testing.T) {
	repo := &mockReportRepo{debts: []models.DebtRow{
		{StudentName: "Ada", TotalDebt: 400},
		{StudentName: "Blaise", TotalDebt: 150},
	}}
	svc := NewReportService(repo, nil)

	report, err := svc.DebtList(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 550.0, report.GrandTotal, 0.001)
}

func TestBarLengths(t *testing.T) {
	metrics := []models.CourseMetric{
		{Value: 1000},
		{Value: 500},
		{Value: 1},
		{Value: 0},
	}
	lengths := BarLengths(metrics, 30)
	assert.Equal(t, 30, lengths[0])
	assert.Equal(t, 15, lengths[1])
	assert.Equal(t, 1, lengths[2], "non-zero values always show a bar")
	assert.Equal(t, 0, lengths[3])
}

func TestBarLengthsAllZero(t *testing.T) {
	lengths := BarLengths([]models.CourseMetric{{Value: 0}, {Value: 0}}, 30)
	assert.Equal(t, []int{0, 0}, lengths)
}
