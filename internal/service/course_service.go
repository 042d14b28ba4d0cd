package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/internal/repository"
	"github.com/irfanhanif/sfams/pkg/apperrors"
)

type courseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]models.CourseDetail, error)
	CreateWithTuition(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id string, name *string, creditHours *int, semesterFee *float64) error
	DependentCount(ctx context.Context, id string) (int, error)
	Delete(ctx context.Context, id string) error
}

// CourseService manages the course lifecycle and the tuition fee each
// course owns.
type CourseService struct {
	courses   courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the service.
func NewCourseService(courses courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{courses: courses, validator: validate, logger: logger}
}

// List returns all courses with lecturer names.
func (s *CourseService) List(ctx context.Context) ([]models.CourseDetail, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to list courses")
	}
	return courses, nil
}

// Find returns one course by ID.
func (s *CourseService) Find(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Clone(apperrors.ErrNotFound, "course not found")
		}
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to load course")
	}
	return course, nil
}

// CreateCourseRequest carries a new course.
type CreateCourseRequest struct {
	Name        string  `validate:"required"`
	CreditHours int     `validate:"required,gt=0"`
	SemesterFee float64 `validate:"required,gt=0"`
}

// Create inserts the course and its tuition fee together.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, "invalid course")
	}
	course := &models.Course{
		Name:        req.Name,
		CreditHours: req.CreditHours,
		SemesterFee: req.SemesterFee,
	}
	if err := s.courses.CreateWithTuition(ctx, course); err != nil {
		s.logger.Error("course creation failed", zap.String("name", req.Name), zap.Error(err))
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to create course")
	}
	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("name", course.Name))
	return course, nil
}

// EditCourseRequest carries optional changes; nil = unchanged.
type EditCourseRequest struct {
	Name        *string
	CreditHours *int
	SemesterFee *float64
}

// Edit applies the provided fields; the tuition fee row follows the course
// through its explicit reference.
func (s *CourseService) Edit(ctx context.Context, id string, req EditCourseRequest) error {
	if req.Name == nil && req.CreditHours == nil && req.SemesterFee == nil {
		return apperrors.Clone(apperrors.ErrValidation, "nothing to update")
	}
	if req.Name != nil && *req.Name == "" {
		return apperrors.Clone(apperrors.ErrValidation, "course name cannot be empty")
	}
	if req.CreditHours != nil && *req.CreditHours <= 0 {
		return apperrors.Clone(apperrors.ErrValidation, "credit hours must be positive")
	}
	if req.SemesterFee != nil && *req.SemesterFee <= 0 {
		return apperrors.Clone(apperrors.ErrValidation, "semester fee must be positive")
	}

	if err := s.courses.Update(ctx, id, req.Name, req.CreditHours, req.SemesterFee); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return apperrors.Clone(apperrors.ErrNotFound, "course not found")
		}
		s.logger.Error("course update failed", zap.String("course_id", id), zap.Error(err))
		return apperrors.Wrap(err, apperrors.KindPersistence, "failed to update course")
	}
	return nil
}

// Delete removes a course after the confirmation token is typed. Courses
// with enrollments or billed fees are refused: payments are immutable audit
// rows and cascading would orphan them.
func (s *CourseService) Delete(ctx context.Context, id, confirm string) error {
	if confirm != ConfirmToken {
		return apperrors.Clone(apperrors.ErrValidation, "confirmation token mismatch")
	}
	dependents, err := s.courses.DependentCount(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindPersistence, "failed to check course dependents")
	}
	if dependents > 0 {
		return apperrors.Clone(apperrors.ErrConflict, "course has enrolled students or billed fees")
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return apperrors.Clone(apperrors.ErrNotFound, "course not found")
		}
		s.logger.Error("course deletion failed", zap.String("course_id", id), zap.Error(err))
		return apperrors.Wrap(err, apperrors.KindPersistence, "failed to delete course")
	}
	s.logger.Info("course deleted", zap.String("course_id", id))
	return nil
}
