package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/pkg/apperrors"
)

type feeRepository interface {
	FindEntry(ctx context.Context, entryID string) (*models.StudentFee, error)
	ListOutstanding(ctx context.Context, studentID string) ([]models.StudentFeeDetail, error)
	RecordPayment(ctx context.Context, payment *models.Payment, newAmountPaid float64, newStatus models.FeeStatus) error
	PaymentHistory(ctx context.Context, studentID string) ([]models.PaymentDetail, error)
	AllPayments(ctx context.Context) ([]models.PaymentDetail, error)
}

// LedgerService runs the fee-ledger: outstanding balances and payments.
type LedgerService struct {
	fees   feeRepository
	logger *zap.Logger
}

// NewLedgerService constructs the service.
func NewLedgerService(fees feeRepository, logger *zap.Logger) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{fees: fees, logger: logger}
}

// Outstanding returns the student's unsettled ledger entries.
func (s *LedgerService) Outstanding(ctx context.Context, studentID string) ([]models.StudentFeeDetail, error) {
	entries, err := s.fees.ListOutstanding(ctx, studentID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load outstanding fees")
	}
	return entries, nil
}

// PayFee records a payment against a ledger entry. Amounts above the
// remaining balance are clamped to it, so amount_paid never exceeds
// amount_due. The payment insert and the ledger update commit atomically.
func (s *LedgerService) PayFee(ctx context.Context, studentID, entryID string, amount float64) (*models.Payment, error) {
	if amount <= 0 {
		return nil, apperrors.Clone(apperrors.ErrValidation, "payment amount must be positive")
	}

	entry, err := s.fees.FindEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "fee entry not found")
		}
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load fee entry")
	}
	if entry.StudentID != studentID {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "fee entry not found")
	}
	if entry.Status == models.FeeStatusPaid {
		return nil, apperrors.Clone(apperrors.ErrConflict, "fee is already settled")
	}

	if remaining := entry.Remaining(); amount > remaining {
		amount = remaining
	}

	newPaid := entry.AmountPaid + amount
	payment := &models.Payment{
		StudentID:      studentID,
		StudentFeeID:   entry.ID,
		Amount:         amount,
		TransactionRef: "PAY-" + uuid.NewString(),
	}
	if err := s.fees.RecordPayment(ctx, payment, newPaid, models.DeriveFeeStatus(newPaid, entry.AmountDue)); err != nil {
		s.logger.Error("payment failed", zap.String("entry_id", entryID), zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "payment could not be recorded")
	}
	s.logger.Info("payment recorded",
		zap.String("transaction_ref", payment.TransactionRef),
		zap.String("entry_id", entry.ID),
		zap.Float64("amount", amount))
	return payment, nil
}

// History returns the student's payments, newest first.
func (s *LedgerService) History(ctx context.Context, studentID string) ([]models.PaymentDetail, error) {
	history, err := s.fees.PaymentHistory(ctx, studentID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load payment history")
	}
	return history, nil
}

// AllPayments returns the full transaction history for admin review.
func (s *LedgerService) AllPayments(ctx context.Context) ([]models.PaymentDetail, error) {
	history, err := s.fees.AllPayments(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load transactions")
	}
	return history, nil
}
