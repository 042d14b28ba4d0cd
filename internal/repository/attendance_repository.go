package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/irfanhanif/sfams/internal/models"
)

// AttendanceRepository handles persistence of attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert inserts or updates the record for (student, course, date).
// Re-marking the same day overwrites the status in place.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.Attendance) error {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO attendance (id, student_id, course_id, date, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (student_id, course_id, date)
        DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.StudentID, record.CourseID, record.Date, record.Status, record.CreatedAt, record.UpdatedAt); err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

// Roster returns the enrolled students of a course with their recorded
// status for the date, defaulting to Present where no row exists yet.
func (r *AttendanceRepository) Roster(ctx context.Context, courseID string, date time.Time) ([]models.RollCallEntry, error) {
	const query = `SELECT s.id AS student_id, s.full_name AS student_name,
        COALESCE(a.status, 'Present') AS status
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        LEFT JOIN attendance a ON a.student_id = e.student_id AND a.course_id = e.course_id AND a.date = $2
        WHERE e.course_id = $1
        ORDER BY s.full_name ASC`
	var roster []models.RollCallEntry
	if err := r.db.SelectContext(ctx, &roster, query, courseID, date); err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	return roster, nil
}

// HistoryByStudent returns a student's attendance, newest first.
func (r *AttendanceRepository) HistoryByStudent(ctx context.Context, studentID string) ([]models.AttendanceHistoryRow, error) {
	const query = `SELECT a.date, a.status, c.name AS course_name
        FROM attendance a
        JOIN courses c ON c.id = a.course_id
        WHERE a.student_id = $1
        ORDER BY a.date DESC`
	var rows []models.AttendanceHistoryRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	return rows, nil
}
