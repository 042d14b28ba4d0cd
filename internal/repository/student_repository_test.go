package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/irfanhanif/sfams/internal/models"
)

func TestStudentRepositoryCreateWithEnrollmentBillsTuition(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	student := &models.Student{
		FullName:     "Ada Lovelace",
		Username:     "ada",
		PasswordHash: "hash",
		Email:        "ada@example.com",
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO enrollments")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "crs-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	feeRows := sqlmock.NewRows([]string{"id", "name", "amount", "is_tuition", "course_id", "created_at"}).
		AddRow("fee-1", "Tuition: Algorithms", 500.0, true, "crs-1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM fees WHERE course_id = $1 AND is_tuition")).
		WithArgs("crs-1").
		WillReturnRows(feeRows)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO student_fees")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "fee-1", 500.0, models.FeeStatusUnpaid, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateWithEnrollment(context.Background(), student, "crs-1")
	require.NoError(t, err)
	require.NotEmpty(t, student.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateProfileMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	name := "New Name"
	mock.ExpectExec(regexp.QuoteMeta("UPDATE students SET")).
		WithArgs("ghost", &name, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProfile(context.Background(), "ghost", &name, nil)
	require.ErrorIs(t, err, ErrNoRowsAffected)
	require.NoError(t, mock.ExpectationsWereMet())
}
