package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/irfanhanif/sfams/internal/models"
	"github.com/irfanhanif/sfams/pkg/apperrors"
)

type directoryStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
}

type directoryTeacherRepository interface {
	List(ctx context.Context) ([]models.Teacher, error)
}

// DirectoryService backs the admin listing screens.
type DirectoryService struct {
	students directoryStudentRepository
	teachers directoryTeacherRepository
	logger   *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(students directoryStudentRepository, teachers directoryTeacherRepository, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{students: students, teachers: teachers, logger: logger}
}

// Students returns all student records.
func (s *DirectoryService) Students(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to list students")
	}
	return students, nil
}

// Teachers returns all teacher records.
func (s *DirectoryService) Teachers(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindPersistence, "failed to list teachers")
	}
	return teachers, nil
}
