package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/pkg/apperrors"
)

type mockFeeRepo struct {
	entry          *models.StudentFee
	findErr        error
	outstanding    []models.StudentFeeDetail
	recordedAmount float64
	recordedPaid   float64
	recordedStatus models.FeeStatus
	recordErr      error
	history        []models.PaymentDetail
}

func (m *mockFeeRepo) FindEntry(ctx context.Context, entryID string) (*models.StudentFee, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.entry, nil
}

func (m *mockFeeRepo) ListOutstanding(ctx context.Context, studentID string) ([]models.StudentFeeDetail, error) {
	return m.outstanding, nil
}

func (m *mockFeeRepo) RecordPayment(ctx context.Context, payment *models.Payment, newAmountPaid float64, newStatus models.FeeStatus) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.recordedAmount = payment.Amount
	m.recordedPaid = newAmountPaid
	m.recordedStatus = newStatus
	return nil
}

func (m *mockFeeRepo) PaymentHistory(ctx context.Context, studentID string) ([]models.PaymentDetail, error) {
	return m.history, nil
}

func (m *mockFeeRepo) AllPayments(ctx context.Context) ([]models.PaymentDetail, error) {
	return m.history, nil
}

func TestLedgerServicePayFeeClampsToRemaining(t *testing.T) {
	repo := &mockFeeRepo{entry: &models.StudentFee{
		ID:         "sf-1",
		StudentID:  "stu-1",
		AmountDue:  500,
		AmountPaid: 0,
		Status:     models.FeeStatusUnpaid,
	}}
	svc := NewLedgerService(repo, nil)

	payment, err := svc.PayFee(context.Background(), "stu-1", "sf-1", 600)
	require.NoError(t, err)
	assert.InDelta(t, 500.0, payment.Amount, 0.001)
	assert.InDelta(t, 500.0, repo.recordedPaid, 0.001)
	assert.Equal(t, models.FeeStatusPaid, repo.recordedStatus)
	assert.Contains(t, payment.TransactionRef, "PAY-")
}

func TestLedgerServicePayFeePartial(t *testing.T) {
	repo := &mockFeeRepo{entry: &models.StudentFee{
		ID:         "sf-1",
		StudentID:  "stu-1",
		AmountDue:  500,
		AmountPaid: 100,
		Status:     models.FeeStatusPartial,
	}}
	svc := NewLedgerService(repo, nil)

	payment, err := svc.PayFee(context.Background(), "stu-1", "sf-1", 150)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, payment.Amount, 0.001)
	assert.InDelta(t, 250.0, repo.recordedPaid, 0.001)
	assert.Equal(t, models.FeeStatusPartial, repo.recordedStatus)
}

func TestLedgerServicePayFeeRejectsNonPositiveAmount(t *testing.T) {
	svc := NewLedgerService(&mockFeeRepo{}, nil)

	_, err := svc.PayFee(context.Background(), "stu-1", "sf-1", 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestLedgerServicePayFeeHidesOtherStudentsEntries(t *testing.T) {
	repo := &mockFeeRepo{entry: &models.StudentFee{
		ID:        "sf-1",
		StudentID: "stu-2",
		AmountDue: 500,
		Status:    models.FeeStatusUnpaid,
	}}
	svc := NewLedgerService(repo, nil)

	_, err := svc.PayFee(context.Background(), "stu-1", "sf-1", 100)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestLedgerServicePayFeeMissingEntry(t *testing.T) {
	repo := &mockFeeRepo{findErr: sql.ErrNoRows}
	svc := NewLedgerService(repo, nil)

	_, err := svc.PayFee(context.Background(), "stu-1", "sf-404", 100)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestLedgerServicePayFeeSettledEntry(t *testing.T) {
	repo := &mockFeeRepo{entry: &models.StudentFee{
		ID:         "sf-1",
		StudentID:  "stu-1",
		AmountDue:  500,
		AmountPaid: 500,
		Status:     models.FeeStatusPaid,
	}}
	svc := NewLedgerService(repo, nil)

	_, err := svc.PayFee(context.Background(), "stu-1", "sf-1", 100)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}
