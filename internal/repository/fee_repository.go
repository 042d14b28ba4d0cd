package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/irfanhanif/sfams/internal/models"
)

// FeeRepository handles the fee ledger and its append-only payment trail.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs the repository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// FindEntry returns a ledger entry by ID.
func (r *FeeRepository) FindEntry(ctx context.Context, entryID string) (*models.StudentFee, error) {
	const query = `SELECT id, student_id, fee_id, amount_due, amount_paid, status, created_at, updated_at FROM student_fees WHERE id = $1`
	var entry models.StudentFee
	if err := r.db.GetContext(ctx, &entry, query, entryID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListOutstanding returns the student's ledger entries that are not fully
// settled, with fee names for display.
func (r *FeeRepository) ListOutstanding(ctx context.Context, studentID string) ([]models.StudentFeeDetail, error) {
	const query = `SELECT sf.id, sf.student_id, sf.fee_id, sf.amount_due, sf.amount_paid, sf.status, sf.created_at, sf.updated_at,
        f.name AS fee_name
        FROM student_fees sf
        JOIN fees f ON f.id = sf.fee_id
        WHERE sf.student_id = $1 AND sf.status <> $2
        ORDER BY sf.created_at ASC`
	var entries []models.StudentFeeDetail
	if err := r.db.SelectContext(ctx, &entries, query, studentID, models.FeeStatusPaid); err != nil {
		return nil, fmt.Errorf("list outstanding fees: %w", err)
	}
	return entries, nil
}

// RecordPayment appends a payment and settles it against the ledger entry
// in one transaction. Both writes commit together or neither does.
func (r *FeeRepository) RecordPayment(ctx context.Context, payment *models.Payment, newAmountPaid float64, newStatus models.FeeStatus) error {
	now := time.Now().UTC()
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = now
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin payment: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			tx.Rollback()
		}
	}()

	const insertPayment = `INSERT INTO payments (id, student_id, student_fee_id, amount, transaction_ref, paid_at)
        VALUES (:id, :student_id, :student_fee_id, :amount, :transaction_ref, :paid_at)`
	if _, err := tx.NamedExecContext(ctx, insertPayment, payment); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	const updateEntry = `UPDATE student_fees SET amount_paid = $2, status = $3, updated_at = $4 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateEntry, payment.StudentFeeID, newAmountPaid, newStatus, now); err != nil {
		return fmt.Errorf("update ledger entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit payment: %w", err)
	}
	commit = true
	return nil
}

// PaymentHistory returns a student's payments, newest first.
func (r *FeeRepository) PaymentHistory(ctx context.Context, studentID string) ([]models.PaymentDetail, error) {
	const query = `SELECT p.id, p.student_id, p.student_fee_id, p.amount, p.transaction_ref, p.paid_at,
        s.full_name AS student_name, f.name AS fee_name
        FROM payments p
        JOIN students s ON s.id = p.student_id
        JOIN student_fees sf ON sf.id = p.student_fee_id
        JOIN fees f ON f.id = sf.fee_id
        WHERE p.student_id = $1
        ORDER BY p.paid_at DESC`
	var history []models.PaymentDetail
	if err := r.db.SelectContext(ctx, &history, query, studentID); err != nil {
		return nil, fmt.Errorf("payment history: %w", err)
	}
	return history, nil
}

// AllPayments returns every payment on record, newest first.
func (r *FeeRepository) AllPayments(ctx context.Context) ([]models.PaymentDetail, error) {
	const query = `SELECT p.id, p.student_id, p.student_fee_id, p.amount, p.transaction_ref, p.paid_at,
        s.full_name AS student_name, f.name AS fee_name
        FROM payments p
        JOIN students s ON s.id = p.student_id
        JOIN student_fees sf ON sf.id = p.student_fee_id
        JOIN fees f ON f.id = sf.fee_id
        ORDER BY p.paid_at DESC`
	var history []models.PaymentDetail
	if err := r.db.SelectContext(ctx, &history, query); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return history, nil
}
