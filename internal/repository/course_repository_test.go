package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/irfanhanif/sfams/internal/models"
)

func TestCourseRepositoryCreateWithTuition(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	course := &models.Course{Name: "Algorithms", CreditHours: 4, SemesterFee: 500}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO fees")).
		WithArgs(sqlmock.AnyArg(), "Tuition: Algorithms", 500.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateWithTuition(context.Background(), course)
	require.NoError(t, err)
	require.NotEmpty(t, course.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM fees WHERE course_id")).
		WithArgs("crs-404").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE id")).
		WithArgs("crs-404").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "crs-404")
	require.ErrorIs(t, err, ErrNoRowsAffected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryUpdateRenamesTuitionFee(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	name := "Data Structures"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE courses SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("WHERE course_id = $1 AND is_tuition")).
		WithArgs("crs-1", "Tuition: Data Structures", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), "crs-1", &name, nil, nil)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
