package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/pkg/apperrors"
)

type mockAttendanceRepo struct {
	roster     []models.RollCallEntry
	history    []models.AttendanceHistoryRow
	upserts    []models.Attendance
	failFor    string
	upsertsErr error
}

func (m *mockAttendanceRepo) Upsert(ctx context.Context, record *models.Attendance) error {
	if m.upsertsErr != nil {
		return m.upsertsErr
	}
	if m.failFor != "" && record.StudentID == m.failFor {
		return errors.New("write failed")
	}
	m.upserts = append(m.upserts, *record)
	return nil
}

func (m *mockAttendanceRepo) Roster(ctx context.Context, courseID string, date time.Time) ([]models.RollCallEntry, error) {
	return m.roster, nil
}

func (m *mockAttendanceRepo) HistoryByStudent(ctx context.Context, studentID string) ([]models.AttendanceHistoryRow, error) {
	return m.history, nil
}

type mockLecturerRepo struct {
	courses []models.Course
}

func (m *mockLecturerRepo) CoursesByLecturer(ctx context.Context, teacherID string) ([]models.Course, error) {
	return m.courses, nil
}

func TestAttendanceServiceStartRollCall(t *testing.T) {
	repo := &mockAttendanceRepo{roster: []models.RollCallEntry{
		{StudentID: "stu-1", StudentName: "Ada", Status: models.AttendanceStatusPresent},
	}}
	teachers := &mockLecturerRepo{courses: []models.Course{{ID: "crs-1", Name: "Algorithms"}}}
	svc := NewAttendanceService(repo, teachers, nil)

	rollCall, err := svc.StartRollCall(context.Background(), "tch-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", rollCall.Course.Name)
	require.Len(t, rollCall.Entries, 1)
	assert.Equal(t, models.AttendanceStatusPresent, rollCall.Entries[0].Status)
}

func TestAttendanceServiceStartRollCallWithoutCourse(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, &mockLecturerRepo{}, nil)

	_, err := svc.StartRollCall(context.Background(), "tch-1", time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestAttendanceServiceSaveRollCallContinuesPastFailures(t *testing.T) {
	repo := &mockAttendanceRepo{failFor: "stu-2"}
	svc := NewAttendanceService(repo, &mockLecturerRepo{}, nil)

	rollCall := &RollCall{
		Course: models.Course{ID: "crs-1"},
		Date:   time.Now(),
		Entries: []models.RollCallEntry{
			{StudentID: "stu-1", StudentName: "Ada", Status: models.AttendanceStatusPresent},
			{StudentID: "stu-2", StudentName: "Blaise", Status: models.AttendanceStatusLate},
			{StudentID: "stu-3", StudentName: "Carl", Status: models.AttendanceStatusAbsent},
		},
	}

	results := svc.SaveRollCall(context.Background(), rollCall)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
	assert.Len(t, repo.upserts, 2)
}

func TestAttendanceServiceMarkRejectsUnknownStatus(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, &mockLecturerRepo{}, nil)

	err := svc.Mark(context.Background(), "crs-1", "stu-1", time.Now(), models.AttendanceStatus("Skipped"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestAttendanceServiceStudentHistoryEmpty(t *testing.T) {
	svc := NewAttendanceService(&mockAttendanceRepo{}, &mockLecturerRepo{}, nil)

	rows, summary, err := svc.StudentHistory(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, AttendanceSummary{}, summary)
}

func TestAttendanceServiceStudentHistorySummary(t *testing.T) {
	repo := &mockAttendanceRepo{history: []models.AttendanceHistoryRow{
		{Status: models.AttendanceStatusPresent},
		{Status: models.AttendanceStatusPresent},
		{Status: models.AttendanceStatusLate},
		{Status: models.AttendanceStatusAbsent},
	}}
	svc := NewAttendanceService(repo, &mockLecturerRepo{}, nil)

	rows, summary, err := svc.StudentHistory(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 2, summary.Other)
}
