package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/internal/service"
	"github.com/irfanhanif/sfams/internal/session"
)

// chooseCourse lists all courses and returns the one the user picks.
func (a *App) chooseCourse(ctx context.Context) (*models.CourseDetail, error) {
	courses, err := a.courses.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}
	options := make([]string, len(courses))
	for i, c := range courses {
		options[i] = fmt.Sprintf("%s (%d credits, %.2f)", c.Name, c.CreditHours, c.SemesterFee)
	}
	idx, err := a.console.Choose("Courses", options)
	if err != nil {
		return nil, err
	}
	return &courses[idx], nil
}

func (a *App) registerStudent(ctx context.Context) (session.Outcome, error) {
	course, err := a.chooseCourse(ctx)
	if err != nil {
		return session.Stay, err
	}
	if course == nil {
		a.console.Println("Create a course before registering students.")
		return session.Stay, nil
	}

	fullName, err := a.console.Prompt("Full name")
	if err != nil {
		return session.Stay, err
	}
	username, err := a.console.Prompt("Username")
	if err != nil {
		return session.Stay, err
	}
	password, err := a.console.Prompt("Password")
	if err != nil {
		return session.Stay, err
	}
	email, err := a.console.Prompt("Email (optional)")
	if err != nil {
		return session.Stay, err
	}

	student, err := a.accounts.RegisterStudent(ctx, service.RegisterStudentRequest{
		FullName: fullName,
		Username: username,
		Password: password,
		Email:    email,
		CourseID: course.ID,
	})
	if err != nil {
		return session.Stay, err
	}
	a.console.Printf("Registered %s and enrolled in %s. Tuition of %.2f has been billed.\n",
		student.FullName, course.Name, course.SemesterFee)
	return session.Stay, nil
}

func (a *App) registerTeacher(ctx context.Context) (session.Outcome, error) {
	course, err := a.chooseCourse(ctx)
	if err != nil {
		return session.Stay, err
	}
	if course == nil {
		a.console.Println("Create a course before registering teachers.")
		return session.Stay, nil
	}

	fullName, err := a.console.Prompt("Full name")
	if err != nil {
		return session.Stay, err
	}
	username, err := a.console.Prompt("Username")
	if err != nil {
		return session.Stay, err
	}
	password, err := a.console.Prompt("Password")
	if err != nil {
		return session.Stay, err
	}

	teacher, err := a.accounts.RegisterTeacher(ctx, service.RegisterTeacherRequest{
		FullName: fullName,
		Username: username,
		Password: password,
		CourseID: course.ID,
	})
	if err != nil {
		return session.Stay, err
	}
	a.console.Printf("Registered %s as lecturer of %s.\n", teacher.FullName, course.Name)
	return session.Stay, nil
}

func (a *App) listCourses(ctx context.Context) (session.Outcome, error) {
	courses, err := a.courses.List(ctx)
	if err != nil {
		return session.Stay, err
	}
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		lecturer := "-"
		if c.LecturerName != nil {
			lecturer = *c.LecturerName
		}
		rows = append(rows, []string{
			c.Name,
			strconv.Itoa(c.CreditHours),
			fmt.Sprintf("%.2f", c.SemesterFee),
			fmt.Sprintf("%.2f", c.CostPerCredit()),
			lecturer,
		})
	}
	a.console.Table([]string{"Course", "Credits", "Semester Fee", "Cost/Credit", "Lecturer"}, rows)
	return session.Stay, nil
}

func (a *App) createCourse(ctx context.Context) (session.Outcome, error) {
	name, err := a.console.Prompt("Course name")
	if err != nil {
		return session.Stay, err
	}
	credits, err := a.console.PromptInt("Credit hours")
	if err != nil {
		return session.Stay, err
	}
	fee, err := a.console.PromptFloat("Semester fee")
	if err != nil {
		return session.Stay, err
	}

	course, err := a.courses.Create(ctx, service.CreateCourseRequest{
		Name:        name,
		CreditHours: credits,
		SemesterFee: fee,
	})
	if err != nil {
		return session.Stay, err
	}
	a.console.Printf("Created %s with fee %q.\n", course.Name, models.TuitionFeeName(course.Name))
	return session.Stay, nil
}

func (a *App) editCourse(ctx context.Context) (session.Outcome, error) {
	course, err := a.chooseCourse(ctx)
	if err != nil {
		return session.Stay, err
	}
	if course == nil {
		a.console.Println("No courses to edit.")
		return session.Stay, nil
	}

	a.console.Println("Leave a field blank to keep its current value.")
	name, err := a.console.Prompt(fmt.Sprintf("Name [%s]", course.Name))
	if err != nil {
		return session.Stay, err
	}
	creditsRaw, err := a.console.Prompt(fmt.Sprintf("Credit hours [%d]", course.CreditHours))
	if err != nil {
		return session.Stay, err
	}
	feeRaw, err := a.console.Prompt(fmt.Sprintf("Semester fee [%.2f]", course.SemesterFee))
	if err != nil {
		return session.Stay, err
	}

	var req service.EditCourseRequest
	if name != "" {
		req.Name = &name
	}
	if creditsRaw != "" {
		credits, err := strconv.Atoi(creditsRaw)
		if err != nil {
			a.console.Println("Credit hours must be a whole number.")
			return session.Stay, nil
		}
		req.CreditHours = &credits
	}
	if feeRaw != "" {
		fee, err := strconv.ParseFloat(feeRaw, 64)
		if err != nil {
			a.console.Println("Semester fee must be a number.")
			return session.Stay, nil
		}
		req.SemesterFee = &fee
	}

	if err := a.courses.Edit(ctx, course.ID, req); err != nil {
		return session.Stay, err
	}
	a.console.Println("Course updated.")
	return session.Stay, nil
}

func (a *App) deleteCourse(ctx context.Context) (session.Outcome, error) {
	course, err := a.chooseCourse(ctx)
	if err != nil {
		return session.Stay, err
	}
	if course == nil {
		a.console.Println("No courses to delete.")
		return session.Stay, nil
	}

	confirm, err := a.console.Prompt(fmt.Sprintf("Type %s to delete %s", service.ConfirmToken, course.Name))
	if err != nil {
		return session.Stay, err
	}
	if err := a.courses.Delete(ctx, course.ID, confirm); err != nil {
		return session.Stay, err
	}
	a.console.Println("Course deleted.")
	return session.Stay, nil
}

func (a *App) deleteAccount(ctx context.Context) (session.Outcome, error) {
	idx, err := a.console.Choose("Account type", []string{"Student", "Teacher"})
	if err != nil {
		return session.Stay, err
	}
	role := models.RoleStudent
	if idx == 1 {
		role = models.RoleTeacher
	}

	username, err := a.console.Prompt("Username")
	if err != nil {
		return session.Stay, err
	}
	confirm, err := a.console.Prompt(fmt.Sprintf("Type %s to delete %s", service.ConfirmToken, username))
	if err != nil {
		return session.Stay, err
	}
	if err := a.accounts.DeleteAccount(ctx, role, username, confirm); err != nil {
		return session.Stay, err
	}
	a.console.Println("Account deleted.")
	return session.Stay, nil
}

func (a *App) listStudents(ctx context.Context) (session.Outcome, error) {
	students, err := a.directory.Students(ctx)
	if err != nil {
		return session.Stay, err
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{s.FullName, s.Username, s.Email, s.CreatedAt.Format("2006-01-02")})
	}
	a.console.Table([]string{"Full Name", "Username", "Email", "Registered"}, rows)
	return session.Stay, nil
}

func (a *App) listTeachers(ctx context.Context) (session.Outcome, error) {
	teachers, err := a.directory.Teachers(ctx)
	if err != nil {
		return session.Stay, err
	}
	rows := make([][]string, 0, len(teachers))
	for _, t := range teachers {
		rows = append(rows, []string{t.FullName, t.Username, t.CreatedAt.Format("2006-01-02")})
	}
	a.console.Table([]string{"Full Name", "Username", "Registered"}, rows)
	return session.Stay, nil
}

func (a *App) listTransactions(ctx context.Context) (session.Outcome, error) {
	payments, err := a.ledger.AllPayments(ctx)
	if err != nil {
		return session.Stay, err
	}
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			p.TransactionRef,
			p.StudentName,
			p.FeeName,
			fmt.Sprintf("%.2f", p.Amount),
			p.PaidAt.Format("2006-01-02 15:04"),
		})
	}
	a.console.Table([]string{"Reference", "Student", "Fee", "Amount", "Paid At"}, rows)
	return session.Stay, nil
}

func (a *App) exportRecords(ctx context.Context) (session.Outcome, error) {
	datasetIdx, err := a.console.Choose("Export what", []string{
		"Transaction History", "Outstanding Debt", "Reliability Roster", "Students",
	})
	if err != nil {
		return session.Stay, err
	}
	formatIdx, err := a.console.Choose("Format", []string{"CSV", "XLSX", "PDF"})
	if err != nil {
		return session.Stay, err
	}
	format := []service.Format{service.FormatCSV, service.FormatXLSX, service.FormatPDF}[formatIdx]

	var path string
	switch datasetIdx {
	case 0:
		payments, err := a.ledger.AllPayments(ctx)
		if err != nil {
			return session.Stay, err
		}
		path, err = a.exports.Save(service.TransactionsDataset(payments), "transactions", format)
		if err != nil {
			return session.Stay, err
		}
	case 1:
		report, err := a.reports.DebtList(ctx)
		if err != nil {
			return session.Stay, err
		}
		path, err = a.exports.Save(service.DebtDataset(report), "debt", format)
		if err != nil {
			return session.Stay, err
		}
	case 2:
		report, err := a.reports.Reliability(ctx)
		if err != nil {
			return session.Stay, err
		}
		path, err = a.exports.Save(service.ReliabilityDataset(report), "reliability", format)
		if err != nil {
			return session.Stay, err
		}
	default:
		students, err := a.directory.Students(ctx)
		if err != nil {
			return session.Stay, err
		}
		path, err = a.exports.Save(service.StudentsDataset(students), "students", format)
		if err != nil {
			return session.Stay, err
		}
	}
	a.console.Printf("Saved %s\n", path)
	return session.Stay, nil
}

func (a *App) showReliability(ctx context.Context) (session.Outcome, error) {
	report, err := a.reports.Reliability(ctx)
	if err != nil {
		return session.Stay, err
	}
	rows := make([][]string, 0, len(report.Scores))
	for i, score := range report.Scores {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			score.StudentName,
			fmt.Sprintf("%.1f%%", score.AttendanceRate),
			fmt.Sprintf("%.1f%%", score.PaymentRate),
			fmt.Sprintf("%.1f", score.Score),
			string(score.Grade),
		})
	}
	a.console.Table([]string{"#", "Student", "Attendance", "Payments", "Score", "Grade"}, rows)
	if len(report.Scores) > 0 {
		a.console.Printf("Cohort average: %.1f\n", report.Average)
	}
	if report.Skipped > 0 {
		a.console.Printf("%d student(s) skipped: not enough data.\n", report.Skipped)
	}
	return session.Stay, nil
}

func (a *App) showDebt(ctx context.Context) (session.Outcome, error) {
	report, err := a.reports.DebtList(ctx)
	if err != nil {
		return session.Stay, err
	}
	rows := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		rows = append(rows, []string{row.StudentName, fmt.Sprintf("%.2f", row.TotalDebt)})
	}
	a.console.Table([]string{"Student", "Outstanding"}, rows)
	a.console.Printf("Total outstanding: %.2f\n", report.GrandTotal)
	return session.Stay, nil
}

func (a *App) showDashboard(ctx context.Context) (session.Outcome, error) {
	report, err := a.reports.ExecutiveStats(ctx)
	if err != nil {
		return session.Stay, err
	}
	a.console.Printf("Revenue: %.2f   Outstanding: %.2f   Students: %d\n",
		report.Totals.Revenue, report.Totals.OutstandingDebt, report.Totals.StudentCount)

	a.console.Println("\nRevenue by course:")
	a.renderMetricChart(report.RevenueByCourse, func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	})
	a.console.Println("\nEnrollment by course:")
	a.renderMetricChart(report.StudentsByCourse, func(v float64) string {
		return strconv.Itoa(int(v))
	})
	return session.Stay, nil
}

func (a *App) renderMetricChart(metrics []models.CourseMetric, format func(float64) string) {
	labels := make([]string, len(metrics))
	values := make([]string, len(metrics))
	for i, m := range metrics {
		labels[i] = m.CourseName
		values[i] = format(m.Value)
	}
	a.console.BarChart(labels, values, service.BarLengths(metrics, a.chartWidth))
}
