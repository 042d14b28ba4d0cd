package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/irfanhanif/sfams/internal/models"
)

// CourseRepository handles persistence of courses and their tuition fees.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindByID returns a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, name, credit_hours, semester_fee, lecturer_id, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// List returns all courses with their lecturer names.
func (r *CourseRepository) List(ctx context.Context) ([]models.CourseDetail, error) {
	const query = `SELECT c.id, c.name, c.credit_hours, c.semester_fee, c.lecturer_id, c.created_at, c.updated_at,
        t.full_name AS lecturer_name
        FROM courses c
        LEFT JOIN teachers t ON t.id = c.lecturer_id
        ORDER BY c.created_at ASC`
	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// CreateWithTuition inserts a course and its tuition fee row in one
// transaction. The fee references the course by ID, not by name.
func (r *CourseRepository) CreateWithTuition(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	course.CreatedAt = now
	course.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin course creation: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	const insertCourse = `INSERT INTO courses (id, name, credit_hours, semester_fee, lecturer_id, created_at, updated_at)
        VALUES (:id, :name, :credit_hours, :semester_fee, :lecturer_id, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertCourse, course); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}

	const insertFee = `INSERT INTO fees (id, name, amount, is_tuition, course_id, created_at)
        VALUES ($1, $2, $3, TRUE, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertFee, uuid.NewString(), models.TuitionFeeName(course.Name), course.SemesterFee, course.ID, now); err != nil {
		return fmt.Errorf("insert tuition fee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit course creation: %w", err)
	}
	commit = true
	return nil
}

// Update changes the optional course fields; nil means unchanged. When the
// name or fee changes, the linked tuition fee row is updated in the same
// transaction via its course reference.
func (r *CourseRepository) Update(ctx context.Context, id string, name *string, creditHours *int, semesterFee *float64) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin course update: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	const updateCourse = `UPDATE courses SET
        name = COALESCE($2, name),
        credit_hours = COALESCE($3, credit_hours),
        semester_fee = COALESCE($4, semester_fee),
        updated_at = $5
        WHERE id = $1`
	res, err := tx.ExecContext(ctx, updateCourse, id, name, creditHours, semesterFee, now)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRowsAffected
	}

	if name != nil || semesterFee != nil {
		var feeName *string
		if name != nil {
			derived := models.TuitionFeeName(*name)
			feeName = &derived
		}
		const updateFee = `UPDATE fees SET
            name = COALESCE($2, name),
            amount = COALESCE($3, amount)
            WHERE course_id = $1 AND is_tuition`
		if _, err := tx.ExecContext(ctx, updateFee, id, feeName, semesterFee); err != nil {
			return fmt.Errorf("update tuition fee: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit course update: %w", err)
	}
	commit = true
	return nil
}

// DependentCount returns how many enrollment and ledger rows reference the
// course. Deletion is refused while this is non-zero.
func (r *CourseRepository) DependentCount(ctx context.Context, id string) (int, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM enrollments WHERE course_id = $1) +
        (SELECT COUNT(*) FROM student_fees sf JOIN fees f ON f.id = sf.fee_id WHERE f.course_id = $1)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count course dependents: %w", err)
	}
	return count, nil
}

// Delete removes a course and its fee catalog rows in one transaction.
// Callers must check DependentCount first.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin course deletion: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fees WHERE course_id = $1`, id); err != nil {
		return fmt.Errorf("delete course fees: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRowsAffected
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit course deletion: %w", err)
	}
	commit = true
	return nil
}
