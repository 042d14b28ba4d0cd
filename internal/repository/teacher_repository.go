package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/irfanhanif/sfams/internal/models"
)

// TeacherRepository handles persistence of teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs the repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByUsername returns a teacher by unique username.
func (r *TeacherRepository) FindByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	const query = `SELECT id, full_name, username, password_hash, created_at, updated_at FROM teachers WHERE username = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, username); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// List returns all teachers ordered by creation.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, full_name, username, password_hash, created_at, updated_at FROM teachers ORDER BY created_at ASC`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// CreateWithAssignment inserts a teacher and makes them the lecturer of the
// given course in one transaction.
func (r *TeacherRepository) CreateWithAssignment(ctx context.Context, teacher *models.Teacher, courseID string) error {
	now := time.Now().UTC()
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	teacher.CreatedAt = now
	teacher.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin teacher registration: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	const insertTeacher = `INSERT INTO teachers (id, full_name, username, password_hash, created_at, updated_at)
        VALUES (:id, :full_name, :username, :password_hash, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertTeacher, teacher); err != nil {
		return fmt.Errorf("insert teacher: %w", err)
	}

	const assign = `UPDATE courses SET lecturer_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, assign, courseID, teacher.ID, now); err != nil {
		return fmt.Errorf("assign lecturer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit teacher registration: %w", err)
	}
	commit = true
	return nil
}

// UpdateProfile updates the optional profile fields; nil means unchanged.
func (r *TeacherRepository) UpdateProfile(ctx context.Context, username string, fullName, passwordHash *string) error {
	const query = `UPDATE teachers SET
        full_name = COALESCE($2, full_name),
        password_hash = COALESCE($3, password_hash),
        updated_at = $4
        WHERE username = $1`
	res, err := r.db.ExecContext(ctx, query, username, fullName, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update teacher profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// DeleteByUsername removes a teacher; their courses fall back to no lecturer.
func (r *TeacherRepository) DeleteByUsername(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// CoursesByLecturer returns the courses a teacher lectures.
func (r *TeacherRepository) CoursesByLecturer(ctx context.Context, teacherID string) ([]models.Course, error) {
	const query = `SELECT id, name, credit_hours, semester_fee, lecturer_id, created_at, updated_at FROM courses WHERE lecturer_id = $1 ORDER BY name ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, teacherID); err != nil {
		return nil, fmt.Errorf("list lecturer courses: %w", err)
	}
	return courses, nil
}
