package models

import "time"

// Role identifies which dashboard a logged-in user lands on.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// Valid returns true when the role is a supported value.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	default:
		return false
	}
}

// Student represents a row in the students table.
type Student struct {
	ID           string    `db:"id"`
	FullName     string    `db:"full_name"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Teacher represents a row in the teachers table.
type Teacher struct {
	ID           string    `db:"id"`
	FullName     string    `db:"full_name"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Account is the role-neutral identity the session carries after login.
type Account struct {
	ID       string
	Username string
	FullName string
	Role     Role
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID        string    `db:"id"`
	StudentID string    `db:"student_id"`
	CourseID  string    `db:"course_id"`
	CreatedAt time.Time `db:"created_at"`
}
