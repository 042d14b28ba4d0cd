package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/irfanhanif/sfams/internal/models"
)

// StudentRepository handles persistence of students and their enrollments.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByUsername returns a student by unique username.
func (r *StudentRepository) FindByUsername(ctx context.Context, username string) (*models.Student, error) {
	const query = `SELECT id, full_name, username, password_hash, email, created_at, updated_at FROM students WHERE username = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, username); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByID returns a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, full_name, username, password_hash, email, created_at, updated_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// List returns all students ordered by creation.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, full_name, username, password_hash, email, created_at, updated_at FROM students ORDER BY created_at ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// CreateWithEnrollment inserts a student, enrolls them in the given course
// and bills the course tuition, all in one transaction. Enrollment always
// implies an Unpaid ledger entry for the course's tuition fee.
func (r *StudentRepository) CreateWithEnrollment(ctx context.Context, student *models.Student, courseID string) error {
	now := time.Now().UTC()
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	student.CreatedAt = now
	student.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin student registration: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	const insertStudent = `INSERT INTO students (id, full_name, username, password_hash, email, created_at, updated_at)
        VALUES (:id, :full_name, :username, :password_hash, :email, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertStudent, student); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}

	const insertEnrollment = `INSERT INTO enrollments (id, student_id, course_id, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, insertEnrollment, uuid.NewString(), student.ID, courseID, now); err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}

	var fee models.Fee
	const findTuition = `SELECT id, name, amount, is_tuition, course_id, created_at FROM fees WHERE course_id = $1 AND is_tuition`
	if err := tx.GetContext(ctx, &fee, findTuition, courseID); err != nil {
		return fmt.Errorf("find tuition fee: %w", err)
	}

	const insertLedger = `INSERT INTO student_fees (id, student_id, fee_id, amount_due, amount_paid, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, 0, $5, $6, $6)`
	if _, err := tx.ExecContext(ctx, insertLedger, uuid.NewString(), student.ID, fee.ID, fee.Amount, models.FeeStatusUnpaid, now); err != nil {
		return fmt.Errorf("insert tuition ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit student registration: %w", err)
	}
	commit = true
	return nil
}

// UpdateProfile updates the optional profile fields; nil means unchanged.
func (r *StudentRepository) UpdateProfile(ctx context.Context, username string, fullName, passwordHash *string) error {
	const query = `UPDATE students SET
        full_name = COALESCE($2, full_name),
        password_hash = COALESCE($3, password_hash),
        updated_at = $4
        WHERE username = $1`
	res, err := r.db.ExecContext(ctx, query, username, fullName, passwordHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update student profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// DeleteByUsername removes a student account. Enrollment, ledger and
// attendance rows cascade at the schema level; payment rows block the
// delete with a foreign key violation.
func (r *StudentRepository) DeleteByUsername(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
