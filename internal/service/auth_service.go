package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/pkg/apperrors"
	"github.com/irfanhanif/sfams/pkg/config"
)

type authStudentRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Student, error)
}

type authTeacherRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Teacher, error)
}

// AuthService authenticates users for the three roles. The admin role is a
// configured credential pair, never a stored row.
type AuthService struct {
	students authStudentRepository
	teachers authTeacherRepository
	admin    config.AdminConfig
	logger   *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(students authStudentRepository, teachers authTeacherRepository, admin config.AdminConfig, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{students: students, teachers: teachers, admin: admin, logger: logger}
}

// Authenticate verifies a credential pair for the requested role. Unknown
// username and wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, role models.Role, username, password string) (*models.Account, error) {
	switch role {
	case models.RoleAdmin:
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
		if !userOK || !passOK {
			return nil, apperrors.Clone(apperrors.ErrInvalidCredentials, "")
		}
		return &models.Account{ID: "admin", Username: username, FullName: "Administrator", Role: models.RoleAdmin}, nil

	case models.RoleTeacher:
		teacher, err := s.teachers.FindByUsername(ctx, username)
		if err != nil {
			return nil, s.loginFailure(err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(password)); err != nil {
			return nil, apperrors.Clone(apperrors.ErrInvalidCredentials, "")
		}
		return &models.Account{ID: teacher.ID, Username: teacher.Username, FullName: teacher.FullName, Role: models.RoleTeacher}, nil

	case models.RoleStudent:
		student, err := s.students.FindByUsername(ctx, username)
		if err != nil {
			return nil, s.loginFailure(err)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password)); err != nil {
			return nil, apperrors.Clone(apperrors.ErrInvalidCredentials, "")
		}
		return &models.Account{ID: student.ID, Username: student.Username, FullName: student.FullName, Role: models.RoleStudent}, nil

	default:
		return nil, apperrors.Clone(apperrors.ErrValidation, "unknown role")
	}
}

func (s *AuthService) loginFailure(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.Clone(apperrors.ErrInvalidCredentials, "")
	}
	s.logger.Error("login lookup failed", zap.Error(err))
	return apperrors.Wrap(err, apperrors.KindPersistence, "failed to verify credentials")
}
