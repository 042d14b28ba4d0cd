package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
	AttendanceStatusLate    AttendanceStatus = "Late"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate:
		return true
	default:
		return false
	}
}

// Next cycles to the following status during roll call.
func (s AttendanceStatus) Next() AttendanceStatus {
	switch s {
	case AttendanceStatusPresent:
		return AttendanceStatusAbsent
	case AttendanceStatusAbsent:
		return AttendanceStatusLate
	default:
		return AttendanceStatusPresent
	}
}

// Attendance represents a row in the attendance table. At most one row
// exists per (student, course, date).
type Attendance struct {
	ID        string           `db:"id"`
	StudentID string           `db:"student_id"`
	CourseID  string           `db:"course_id"`
	Date      time.Time        `db:"date"`
	Status    AttendanceStatus `db:"status"`
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
}

// RollCallEntry is one roster line during a roll-call session.
type RollCallEntry struct {
	StudentID   string           `db:"student_id"`
	StudentName string           `db:"student_name"`
	Status      AttendanceStatus `db:"status"`
}

// AttendanceHistoryRow is one line of a student's attendance history.
type AttendanceHistoryRow struct {
	Date       time.Time        `db:"date"`
	Status     AttendanceStatus `db:"status"`
	CourseName string           `db:"course_name"`
}
