package models

import "time"

// Course represents a row in the courses table.
type Course struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	CreditHours int       `db:"credit_hours"`
	SemesterFee float64   `db:"semester_fee"`
	LecturerID  *string   `db:"lecturer_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// CourseDetail extends a course with its lecturer's name for listings.
type CourseDetail struct {
	Course
	LecturerName *string `db:"lecturer_name"`
}

// CostPerCredit returns the fee divided by credit hours, zero-safe.
func (c Course) CostPerCredit() float64 {
	if c.CreditHours == 0 {
		return 0
	}
	return c.SemesterFee / float64(c.CreditHours)
}

// TuitionFeeName derives the display name of a course's tuition fee.
func TuitionFeeName(courseName string) string {
	return "Tuition: " + courseName
}
