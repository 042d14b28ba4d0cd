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

func TestAttendanceRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	record := &models.Attendance{
		StudentID: "stu-1",
		CourseID:  "crs-1",
		Date:      date,
		Status:    models.AttendanceStatusLate,
	}

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (student_id, course_id, date)")).
		WithArgs(sqlmock.AnyArg(), "stu-1", "crs-1", date, models.AttendanceStatusLate, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), record)
	require.NoError(t, err)
	require.NotEmpty(t, record.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryRosterDefaultsToPresent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"student_id", "student_name", "status"}).
		AddRow("stu-1", "Ada Lovelace", models.AttendanceStatusPresent).
		AddRow("stu-2", "Blaise Pascal", models.AttendanceStatusAbsent)
	mock.ExpectQuery(regexp.QuoteMeta("FROM enrollments e")).
		WithArgs("crs-1", date).
		WillReturnRows(rows)

	roster, err := repo.Roster(context.Background(), "crs-1", date)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	require.Equal(t, models.AttendanceStatusPresent, roster[0].Status)
	require.Equal(t, models.AttendanceStatusAbsent, roster[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
