package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/internal/repository"
	"github.com/irfanhanif/sfams/pkg/apperrors"
)

// ConfirmToken must be typed verbatim before destructive operations run.
const ConfirmToken = "CONFIRM"

type accountStudentRepository interface {
	CreateWithEnrollment(ctx context.Context, student *models.Student, courseID string) error
	UpdateProfile(ctx context.Context, username string, fullName, passwordHash *string) error
	DeleteByUsername(ctx context.Context, username string) error
}

type accountTeacherRepository interface {
	CreateWithAssignment(ctx context.Context, teacher *models.Teacher, courseID string) error
	UpdateProfile(ctx context.Context, username string, fullName, passwordHash *string) error
	DeleteByUsername(ctx context.Context, username string) error
}

type accountCourseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// AccountService covers registration, profile updates and account removal.
type AccountService struct {
	students  accountStudentRepository
	teachers  accountTeacherRepository
	courses   accountCourseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAccountService constructs the service.
func NewAccountService(students accountStudentRepository, teachers accountTeacherRepository, courses accountCourseRepository, validate *validator.Validate, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{students: students, teachers: teachers, courses: courses, validator: validate, logger: logger}
}

// RegisterStudentRequest carries a student registration.
type RegisterStudentRequest struct {
	FullName string `validate:"required"`
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=4"`
	Email    string `validate:"omitempty,email"`
	CourseID string `validate:"required"`
}

// RegisterStudent creates a student, enrolls them in the chosen course and
// bills tuition, atomically.
func (s *AccountService) RegisterStudent(ctx context.Context, req RegisterStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, "invalid registration")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "course not found")
		}
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load course")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to hash password")
	}

	student := &models.Student{
		FullName:     req.FullName,
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
	}
	if err := s.students.CreateWithEnrollment(ctx, student, req.CourseID); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Clone(apperrors.ErrConflict, "username already taken")
		}
		s.logger.Error("student registration failed", zap.String("username", req.Username), zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to register student")
	}
	s.logger.Info("student registered", zap.String("username", req.Username), zap.String("course_id", req.CourseID))
	return student, nil
}

// RegisterTeacherRequest carries a teacher registration.
type RegisterTeacherRequest struct {
	FullName string `validate:"required"`
	Username string `validate:"required,min=3"`
	Password string `validate:"required,min=4"`
	CourseID string `validate:"required"`
}

// RegisterTeacher creates a teacher and assigns them as lecturer of the
// chosen course, atomically.
func (s *AccountService) RegisterTeacher(ctx context.Context, req RegisterTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, "invalid registration")
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "course not found")
		}
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load course")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to hash password")
	}

	teacher := &models.Teacher{
		FullName:     req.FullName,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.teachers.CreateWithAssignment(ctx, teacher, req.CourseID); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Clone(apperrors.ErrConflict, "username already taken")
		}
		s.logger.Error("teacher registration failed", zap.String("username", req.Username), zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to register teacher")
	}
	s.logger.Info("teacher registered", zap.String("username", req.Username), zap.String("course_id", req.CourseID))
	return teacher, nil
}

// UpdateProfileRequest carries optional profile changes; empty = unchanged.
type UpdateProfileRequest struct {
	FullName string
	Password string `validate:"omitempty,min=4"`
}

// UpdateProfile applies the non-empty fields to the caller's own account.
func (s *AccountService) UpdateProfile(ctx context.Context, role models.Role, username string, req UpdateProfileRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return apperrors.Wrap(err, apperrors.KindValidation, "invalid profile update")
	}
	if req.FullName == "" && req.Password == "" {
		return apperrors.Clone(apperrors.ErrValidation, "nothing to update")
	}

	var fullName, passwordHash *string
	if req.FullName != "" {
		fullName = &req.FullName
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return apperrors.Wrap(err, apperrors.KindPersistence, "failed to hash password")
		}
		hashed := string(hash)
		passwordHash = &hashed
	}

	var err error
	switch role {
	case models.RoleStudent:
		err = s.students.UpdateProfile(ctx, username, fullName, passwordHash)
	case models.RoleTeacher:
		err = s.teachers.UpdateProfile(ctx, username, fullName, passwordHash)
	default:
		return apperrors.Clone(apperrors.ErrValidation, "role has no stored profile")
	}
	if err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return apperrors.Clone(apperrors.ErrNotFound, "account not found")
		}
		return apperrors.Wrap(err, apperrors.KindPersistence, "failed to update profile")
	}
	return nil
}

// DeleteAccount removes a teacher or student account after the confirmation
// token is typed verbatim.
func (s *AccountService) DeleteAccount(ctx context.Context, role models.Role, username, confirm string) error {
	if confirm != ConfirmToken {
		return apperrors.Clone(apperrors.ErrValidation, "confirmation token mismatch")
	}

	var err error
	switch role {
	case models.RoleStudent:
		err = s.students.DeleteByUsername(ctx, username)
	case models.RoleTeacher:
		err = s.teachers.DeleteByUsername(ctx, username)
	default:
		return apperrors.Clone(apperrors.ErrValidation, "only teacher or student accounts can be deleted")
	}
	if err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return apperrors.Clone(apperrors.ErrNotFound, "account not found")
		}
		if isForeignKeyViolation(err) {
			return apperrors.Clone(apperrors.ErrConflict, "account has payment history and cannot be deleted")
		}
		s.logger.Error("account deletion failed", zap.String("username", username), zap.Error(err))
		return apperrors.Wrap(err, apperrors.KindPersistence, "failed to delete account")
	}
	s.logger.Info("account deleted", zap.String("username", username), zap.String("role", string(role)))
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
