package ui

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/internal/service"
	"github.com/irfanhanif/sfams/internal/session"
)

// App wires the interactive screens to the service layer.
type App struct {
	console    *Console
	auth       *service.AuthService
	accounts   *service.AccountService
	courses    *service.CourseService
	ledger     *service.LedgerService
	attendance *service.AttendanceService
	reports    *service.ReportService
	directory  *service.DirectoryService
	exports    *service.ExportService
	chartWidth int
	logger     *zap.Logger
}

// Services groups the dependencies of the App.
type Services struct {
	Auth       *service.AuthService
	Accounts   *service.AccountService
	Courses    *service.CourseService
	Ledger     *service.LedgerService
	Attendance *service.AttendanceService
	Reports    *service.ReportService
	Directory  *service.DirectoryService
	Exports    *service.ExportService
}

// NewApp constructs the console application.
func NewApp(console *Console, svcs Services, chartWidth int, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if chartWidth <= 0 {
		chartWidth = 30
	}
	return &App{
		console:    console,
		auth:       svcs.Auth,
		accounts:   svcs.Accounts,
		courses:    svcs.Courses,
		ledger:     svcs.Ledger,
		attendance: svcs.Attendance,
		reports:    svcs.Reports,
		directory:  svcs.Directory,
		exports:    svcs.Exports,
		chartWidth: chartWidth,
		logger:     logger,
	}
}

// Run drives the login loop until the user exits. Closed input ends the
// loop cleanly.
func (a *App) Run(ctx context.Context) error {
	roles := []struct {
		label string
		role  models.Role
	}{
		{"Login as Admin", models.RoleAdmin},
		{"Login as Teacher", models.RoleTeacher},
		{"Login as Student", models.RoleStudent},
	}
	options := []string{roles[0].label, roles[1].label, roles[2].label, "Exit"}

	for {
		idx, err := a.console.Choose("School Fees & Attendance", options)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if idx == len(roles) {
			a.console.Println("Goodbye.")
			return nil
		}

		account, err := a.login(ctx, roles[idx].role)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			a.console.ShowError(err)
			continue
		}
		a.console.Printf("\nWelcome, %s.\n", account.FullName)

		manager := session.NewManager(a.console, a.logger)
		if err := manager.Run(ctx, a.menuFor(account)); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		a.console.Println("Logged out.")
	}
}

func (a *App) login(ctx context.Context, role models.Role) (*models.Account, error) {
	username, err := a.console.Prompt("Username")
	if err != nil {
		return nil, err
	}
	password, err := a.console.Prompt("Password")
	if err != nil {
		return nil, err
	}
	return a.auth.Authenticate(ctx, role, username, password)
}

// today returns the current calendar date, time part zeroed.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (a *App) menuFor(account *models.Account) *session.Menu {
	switch account.Role {
	case models.RoleAdmin:
		return a.adminMenu()
	case models.RoleTeacher:
		return a.teacherMenu(account)
	default:
		return a.studentMenu(account)
	}
}

func (a *App) adminMenu() *session.Menu {
	courses := &session.Menu{
		Title: "Manage Courses",
		Items: []session.Item{
			{Label: "List Courses", Action: a.listCourses},
			{Label: "Create Course", Action: a.createCourse},
			{Label: "Edit Course", Action: a.editCourse},
			{Label: "Delete Course", Action: a.deleteCourse},
			session.BackItem(),
		},
	}
	records := &session.Menu{
		Title: "Records",
		Items: []session.Item{
			{Label: "List Students", Action: a.listStudents},
			{Label: "List Teachers", Action: a.listTeachers},
			{Label: "List Courses", Action: a.listCourses},
			{Label: "Transaction History", Action: a.listTransactions},
			{Label: "Export Records", Action: a.exportRecords},
			session.BackItem(),
		},
	}
	reports := &session.Menu{
		Title: "Reports",
		Items: []session.Item{
			{Label: "Reliability Roster", Action: a.showReliability},
			{Label: "Outstanding Debt", Action: a.showDebt},
			{Label: "Executive Dashboard", Action: a.showDashboard},
			session.BackItem(),
		},
	}
	return &session.Menu{
		Title: "Admin Menu",
		Items: []session.Item{
			{Label: "Register Student", Action: a.registerStudent},
			{Label: "Register Teacher", Action: a.registerTeacher},
			{Label: "Manage Courses", Submenu: courses},
			{Label: "Records", Submenu: records},
			{Label: "Reports", Submenu: reports},
			{Label: "Delete Account", Action: a.deleteAccount},
			session.LogoutItem(),
		},
	}
}

func (a *App) teacherMenu(account *models.Account) *session.Menu {
	return &session.Menu{
		Title: "Teacher Menu",
		Items: []session.Item{
			{Label: "Take Roll Call", Action: a.takeRollCall(account)},
			{Label: "Reliability Roster", Action: a.showReliability},
			{Label: "Update Profile", Action: a.updateProfile(account)},
			session.LogoutItem(),
		},
	}
}

func (a *App) studentMenu(account *models.Account) *session.Menu {
	return &session.Menu{
		Title: "Student Menu",
		Items: []session.Item{
			{Label: "Outstanding Fees", Action: a.showOutstanding(account)},
			{Label: "Pay a Fee", Action: a.payFee(account)},
			{Label: "Payment History", Action: a.showPaymentHistory(account)},
			{Label: "My Attendance", Action: a.showAttendance(account)},
			{Label: "My Reliability Score", Action: a.showMyScore(account)},
			{Label: "Update Profile", Action: a.updateProfile(account)},
			session.LogoutItem(),
		},
	}
}
