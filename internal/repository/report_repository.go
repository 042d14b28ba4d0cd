package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/irfanhanif/sfams/internal/models"
)

// ReportRepository answers the aggregate queries behind the analytics
// screens. All arithmetic that SQL can do stays in SQL.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Totals returns the headline figures for the executive dashboard.
func (r *ReportRepository) Totals(ctx context.Context) (*models.SchoolTotals, error) {
	const query = `SELECT
        COALESCE((SELECT SUM(amount) FROM payments), 0) AS revenue,
        COALESCE((SELECT SUM(amount_due - amount_paid) FROM student_fees), 0) AS outstanding_debt,
        (SELECT COUNT(*) FROM students) AS student_count`
	var totals models.SchoolTotals
	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("school totals: %w", err)
	}
	return &totals, nil
}

// ReliabilityRows returns raw attendance and ledger aggregates per student.
// Rate arithmetic and zero-data handling belong to the service layer.
func (r *ReportRepository) ReliabilityRows(ctx context.Context) ([]models.ReliabilityRow, error) {
	const query = `SELECT s.id AS student_id, s.full_name AS student_name,
        COALESCE((SELECT COUNT(*) FROM attendance a WHERE a.student_id = s.id AND a.status = 'Present'), 0) AS present_count,
        COALESCE((SELECT COUNT(*) FROM attendance a WHERE a.student_id = s.id), 0) AS attendance_total,
        COALESCE((SELECT SUM(sf.amount_paid) FROM student_fees sf WHERE sf.student_id = s.id), 0) AS total_paid,
        COALESCE((SELECT SUM(sf.amount_due) FROM student_fees sf WHERE sf.student_id = s.id), 0) AS total_due
        FROM students s
        ORDER BY s.full_name ASC`
	var rows []models.ReliabilityRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("reliability rows: %w", err)
	}
	return rows, nil
}

// ReliabilityRowForStudent returns the aggregates for one student.
func (r *ReportRepository) ReliabilityRowForStudent(ctx context.Context, studentID string) (*models.ReliabilityRow, error) {
	const query = `SELECT s.id AS student_id, s.full_name AS student_name,
        COALESCE((SELECT COUNT(*) FROM attendance a WHERE a.student_id = s.id AND a.status = 'Present'), 0) AS present_count,
        COALESCE((SELECT COUNT(*) FROM attendance a WHERE a.student_id = s.id), 0) AS attendance_total,
        COALESCE((SELECT SUM(sf.amount_paid) FROM student_fees sf WHERE sf.student_id = s.id), 0) AS total_paid,
        COALESCE((SELECT SUM(sf.amount_due) FROM student_fees sf WHERE sf.student_id = s.id), 0) AS total_due
        FROM students s
        WHERE s.id = $1`
	var row models.ReliabilityRow
	if err := r.db.GetContext(ctx, &row, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("reliability row: %w", err)
	}
	return &row, nil
}

// DebtRows returns per-student outstanding debt over unsettled entries,
// largest debt first.
func (r *ReportRepository) DebtRows(ctx context.Context) ([]models.DebtRow, error) {
	const query = `SELECT s.id AS student_id, s.full_name AS student_name,
        SUM(sf.amount_due - sf.amount_paid) AS total_debt
        FROM students s
        JOIN student_fees sf ON sf.student_id = s.id
        WHERE sf.status <> $1
        GROUP BY s.id, s.full_name
        ORDER BY total_debt DESC`
	var rows []models.DebtRow
	if err := r.db.SelectContext(ctx, &rows, query, models.FeeStatusPaid); err != nil {
		return nil, fmt.Errorf("debt rows: %w", err)
	}
	return rows, nil
}

// RevenueByCourse sums payments per course strictly through the ledger's
// fee-to-course reference, so a payment counts only toward the course whose
// fee it settled.
func (r *ReportRepository) RevenueByCourse(ctx context.Context) ([]models.CourseMetric, error) {
	const query = `SELECT c.id AS course_id, c.name AS course_name,
        COALESCE(SUM(p.amount), 0) AS value
        FROM courses c
        LEFT JOIN fees f ON f.course_id = c.id
        LEFT JOIN student_fees sf ON sf.fee_id = f.id
        LEFT JOIN payments p ON p.student_fee_id = sf.id
        GROUP BY c.id, c.name
        ORDER BY value DESC`
	var rows []models.CourseMetric
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("revenue by course: %w", err)
	}
	return rows, nil
}

// EnrollmentByCourse counts enrolled students per course.
func (r *ReportRepository) EnrollmentByCourse(ctx context.Context) ([]models.CourseMetric, error) {
	const query = `SELECT c.id AS course_id, c.name AS course_name,
        COUNT(e.student_id)::float AS value
        FROM courses c
        LEFT JOIN enrollments e ON e.course_id = c.id
        GROUP BY c.id, c.name
        ORDER BY value DESC`
	var rows []models.CourseMetric
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("enrollment by course: %w", err)
	}
	return rows, nil
}
