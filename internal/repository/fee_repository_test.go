package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/irfanhanif/sfams/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestFeeRepositoryRecordPayment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	paidAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	payment := &models.Payment{
		ID:             "pay-1",
		StudentID:      "stu-1",
		StudentFeeID:   "sf-1",
		Amount:         500,
		TransactionRef: "PAY-abc",
		PaidAt:         paidAt,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs("pay-1", "stu-1", "sf-1", 500.0, "PAY-abc", paidAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_fees SET amount_paid")).
		WithArgs("sf-1", 500.0, models.FeeStatusPaid, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.RecordPayment(context.Background(), payment, 500, models.FeeStatusPaid)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryRecordPaymentRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	payment := &models.Payment{
		ID:             "pay-1",
		StudentID:      "stu-1",
		StudentFeeID:   "sf-1",
		Amount:         100,
		TransactionRef: "PAY-abc",
		PaidAt:         time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_fees SET amount_paid")).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.RecordPayment(context.Background(), payment, 100, models.FeeStatusPartial)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryListOutstanding(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "fee_id", "amount_due", "amount_paid", "status", "created_at", "updated_at", "fee_name"}).
		AddRow("sf-1", "stu-1", "fee-1", 500.0, 100.0, models.FeeStatusPartial, now, now, "Tuition: Algorithms")
	mock.ExpectQuery(regexp.QuoteMeta("FROM student_fees sf")).
		WithArgs("stu-1", models.FeeStatusPaid).
		WillReturnRows(rows)

	entries, err := repo.ListOutstanding(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Tuition: Algorithms", entries[0].FeeName)
	require.InDelta(t, 400.0, entries[0].Remaining(), 0.001)
	require.NoError(t, mock.ExpectationsWereMet())
}
