package models

// Grade is the band assigned to a reliability score.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeF Grade = "F"
)

// GradeFor maps a reliability score to its band.
func GradeFor(score float64) Grade {
	switch {
	case score >= 95:
		return GradeS
	case score >= 85:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 50:
		return GradeC
	default:
		return GradeF
	}
}

// ReliabilityRow aggregates a student's attendance and payment behaviour.
type ReliabilityRow struct {
	StudentID       string  `db:"student_id"`
	StudentName     string  `db:"student_name"`
	PresentCount    int     `db:"present_count"`
	AttendanceTotal int     `db:"attendance_total"`
	TotalPaid       float64 `db:"total_paid"`
	TotalDue        float64 `db:"total_due"`
}

// ReliabilityScore is the derived composite metric for one student.
type ReliabilityScore struct {
	StudentID      string
	StudentName    string
	AttendanceRate float64
	PaymentRate    float64
	Score          float64
	Grade          Grade
}

// DebtRow is one line of the outstanding-debt report.
type DebtRow struct {
	StudentID   string  `db:"student_id"`
	StudentName string  `db:"student_name"`
	TotalDebt   float64 `db:"total_debt"`
}

// CourseMetric is a per-course value for the analytics bar charts.
type CourseMetric struct {
	CourseID   string  `db:"course_id"`
	CourseName string  `db:"course_name"`
	Value      float64 `db:"value"`
}

// SchoolTotals holds the headline figures of the executive dashboard.
type SchoolTotals struct {
	Revenue         float64 `db:"revenue"`
	OutstandingDebt float64 `db:"outstanding_debt"`
	StudentCount    int     `db:"student_count"`
}
