package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/pkg/apperrors"
)

type attendanceRepository interface {
	Upsert(ctx context.Context, record *models.Attendance) error
	Roster(ctx context.Context, courseID string, date time.Time) ([]models.RollCallEntry, error)
	HistoryByStudent(ctx context.Context, studentID string) ([]models.AttendanceHistoryRow, error)
}

type attendanceTeacherRepository interface {
	CoursesByLecturer(ctx context.Context, teacherID string) ([]models.Course, error)
}

// AttendanceService runs roll-call sessions and attendance lookups.
type AttendanceService struct {
	attendance attendanceRepository
	teachers   attendanceTeacherRepository
	logger     *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(attendance attendanceRepository, teachers attendanceTeacherRepository, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{attendance: attendance, teachers: teachers, logger: logger}
}

// RollCall holds one roll-call session for a course on a date.
type RollCall struct {
	Course  models.Course
	Date    time.Time
	Entries []models.RollCallEntry
}

// StartRollCall loads the roster of the lecturer's course for the given
// date, with recorded statuses where a row already exists.
func (s *AttendanceService) StartRollCall(ctx context.Context, teacherID string, date time.Time) (*RollCall, error) {
	courses, err := s.teachers.CoursesByLecturer(ctx, teacherID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load courses")
	}
	if len(courses) == 0 {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "no courses assigned to you")
	}
	course := courses[0]

	entries, err := s.attendance.Roster(ctx, course.ID, date)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load roster")
	}
	if len(entries) == 0 {
		return nil, apperrors.Clone(apperrors.ErrNotFound, "no students enrolled")
	}
	return &RollCall{Course: course, Date: date, Entries: entries}, nil
}

// RollCallResult reports the outcome of one student's save.
type RollCallResult struct {
	StudentID   string
	StudentName string
	Err         error
}

// SaveRollCall upserts every entry of the session. Each student's write is
// independent: one failure is reported in its result and does not abort
// the remaining writes.
func (s *AttendanceService) SaveRollCall(ctx context.Context, rollCall *RollCall) []RollCallResult {
	results := make([]RollCallResult, 0, len(rollCall.Entries))
	for _, entry := range rollCall.Entries {
		err := s.Mark(ctx, rollCall.Course.ID, entry.StudentID, rollCall.Date, entry.Status)
		if err != nil {
			s.logger.Warn("roll call write failed",
				zap.String("student_id", entry.StudentID),
				zap.String("course_id", rollCall.Course.ID),
				zap.Error(err))
		}
		results = append(results, RollCallResult{
			StudentID:   entry.StudentID,
			StudentName: entry.StudentName,
			Err:         err,
		})
	}
	return results
}

// Mark records one student's status for (course, date), overwriting any
// earlier record for the same day.
func (s *AttendanceService) Mark(ctx context.Context, courseID, studentID string, date time.Time, status models.AttendanceStatus) error {
	if !status.Valid() {
		return apperrors.Clone(apperrors.ErrValidation, "unknown attendance status")
	}
	record := &models.Attendance{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      date,
		Status:    status,
	}
	if err := s.attendance.Upsert(ctx, record); err != nil {
		return apperrors.Wrap(err, apperrors.KindPersistence, "failed to save attendance")
	}
	return nil
}

// AttendanceSummary counts a student's records by outcome.
type AttendanceSummary struct {
	Present int
	Other   int
}

// StudentHistory returns a student's attendance with a summary.
func (s *AttendanceService) StudentHistory(ctx context.Context, studentID string) ([]models.AttendanceHistoryRow, AttendanceSummary, error) {
	rows, err := s.attendance.HistoryByStudent(ctx, studentID)
	if err != nil {
		return nil, AttendanceSummary{}, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load attendance")
	}
	var summary AttendanceSummary
	for _, row := range rows {
		if row.Status == models.AttendanceStatusPresent {
			summary.Present++
		} else {
			summary.Other++
		}
	}
	return rows, summary, nil
}
