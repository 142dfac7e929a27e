package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type classRepository interface {
	FindByID(ctx context.Context, id string) (*models.ClassDetail, error)
	ListBySchool(ctx context.Context, schoolID string) ([]models.Class, error)
	ExistsByName(ctx context.Context, schoolID, name string) (bool, error)
	Create(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteBySchool(ctx context.Context, schoolID string) (int64, error)
}

// classScopeRemover is the slice of a repository a class cascade needs.
type classScopeRemover interface {
	DeleteByClass(ctx context.Context, classID string) (int64, error)
	DeleteBySchool(ctx context.Context, schoolID string) (int64, error)
}

type classStudentLister interface {
	ListByClass(ctx context.Context, classID string) ([]models.StudentDetail, error)
}

// CreateClassRequest names a new class within a school.
type CreateClassRequest struct {
	Name     string `json:"sclassName" validate:"required"`
	SchoolID string `json:"adminID" validate:"required"`
}

// ClassDeleteSummary reports what a cascading class delete removed.
type ClassDeleteSummary struct {
	Classes  int64 `json:"deletedClasses"`
	Students int64 `json:"deletedStudents"`
	Teachers int64 `json:"deletedTeachers"`
	Subjects int64 `json:"deletedSubjects"`
}

// ClassService handles class groupings and their cascading deletes.
type ClassService struct {
	repo      classRepository
	students  classScopeRemover
	teachers  classScopeRemover
	subjects  classScopeRemover
	roster    classStudentLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, students classScopeRemover, teachers classScopeRemover, subjects classScopeRemover, roster classStudentLister, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{
		repo:      repo,
		students:  students,
		teachers:  teachers,
		subjects:  subjects,
		roster:    roster,
		validator: validate,
		logger:    logger,
	}
}

// Create adds a class. Names are unique per school, case-insensitively.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	taken, err := s.repo.ExistsByName(ctx, req.SchoolID, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class name")
	}
	if taken {
		return nil, appErrors.ErrClassNameExists
	}

	class := &models.Class{Name: req.Name, SchoolID: req.SchoolID}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}

	s.logger.Info("class created", zap.String("class_id", class.ID), zap.String("school_id", class.SchoolID))
	return class, nil
}

// Get returns one class with the resolved school name.
func (s *ClassService) Get(ctx context.Context, id string) (*models.ClassDetail, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "No class found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return class, nil
}

// ListBySchool returns every class of a school.
func (s *ClassService) ListBySchool(ctx context.Context, schoolID string) ([]models.Class, error) {
	classes, err := s.repo.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// ListStudents returns the roster of one class.
func (s *ClassService) ListStudents(ctx context.Context, classID string) ([]models.StudentDetail, error) {
	students, err := s.roster.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class students")
	}
	return students, nil
}

// Delete removes one class along with its students, teachers and subjects.
// Children go first so nothing is left pointing at a missing class.
func (s *ClassService) Delete(ctx context.Context, id string) (*ClassDeleteSummary, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "Class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	summary := &ClassDeleteSummary{}
	var err error
	if summary.Students, err = s.students.DeleteByClass(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class students")
	}
	if summary.Teachers, err = s.teachers.DeleteByClass(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class teachers")
	}
	if summary.Subjects, err = s.subjects.DeleteByClass(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class subjects")
	}
	if summary.Classes, err = s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class")
	}

	s.logger.Info("class deleted", zap.String("class_id", id), zap.Int64("students", summary.Students))
	return summary, nil
}

// DeleteBySchool removes every class of a school along with all school
// students, teachers and subjects.
func (s *ClassService) DeleteBySchool(ctx context.Context, schoolID string) (*ClassDeleteSummary, error) {
	summary := &ClassDeleteSummary{}
	var err error
	if summary.Students, err = s.students.DeleteBySchool(ctx, schoolID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school students")
	}
	if summary.Teachers, err = s.teachers.DeleteBySchool(ctx, schoolID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school teachers")
	}
	if summary.Subjects, err = s.subjects.DeleteBySchool(ctx, schoolID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school subjects")
	}
	if summary.Classes, err = s.repo.DeleteBySchool(ctx, schoolID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school classes")
	}

	s.logger.Info("school classes deleted", zap.String("school_id", schoolID), zap.Int64("classes", summary.Classes))
	return summary, nil
}
