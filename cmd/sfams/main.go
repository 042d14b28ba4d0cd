package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/irfanhanif/sfams/internal/repository"
	"github.com/irfanhanif/sfams/internal/service"
	"github.com/irfanhanif/sfams/internal/ui"
	"github.com/irfanhanif/sfams/pkg/config"
	"github.com/irfanhanif/sfams/pkg/database"
	"github.com/irfanhanif/sfams/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Errorw("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Errorw("migrations failed", "error", err)
		os.Exit(1)
	}

	students := repository.NewStudentRepository(db)
	teachers := repository.NewTeacherRepository(db)
	courses := repository.NewCourseRepository(db)
	fees := repository.NewFeeRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	reports := repository.NewReportRepository(db)

	validate := validator.New()
	svcs := ui.Services{
		Auth:       service.NewAuthService(students, teachers, cfg.Admin, logr),
		Accounts:   service.NewAccountService(students, teachers, courses, validate, logr),
		Courses:    service.NewCourseService(courses, validate, logr),
		Ledger:     service.NewLedgerService(fees, logr),
		Attendance: service.NewAttendanceService(attendance, teachers, logr),
		Reports:    service.NewReportService(reports, logr),
		Directory:  service.NewDirectoryService(students, teachers, logr),
		Exports:    service.NewExportService(cfg.Exports.Dir, logr),
	}

	console := ui.NewConsole(os.Stdin, os.Stdout)
	app := ui.NewApp(console, svcs, cfg.Reports.ChartWidth, logr)

	logr.Sugar().Infow("session starting", "env", cfg.Env)
	if err := app.Run(context.Background()); err != nil {
		logr.Sugar().Errorw("session failed", "error", err)
		os.Exit(1)
	}
}
