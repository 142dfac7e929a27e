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

type subjectRepository interface {
	FindByID(ctx context.Context, id string) (*models.SubjectDetail, error)
	ListBySchool(ctx context.Context, schoolID string) ([]models.SubjectDetail, error)
	ListByClass(ctx context.Context, classID string) ([]models.SubjectDetail, error)
	ListFreeByClass(ctx context.Context, classID string) ([]models.SubjectDetail, error)
	ExistsByName(ctx context.Context, classID, name string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteBySchool(ctx context.Context, schoolID string) (int64, error)
	DeleteByClass(ctx context.Context, classID string) (int64, error)
}

// teacherRefClearer releases the teacher side of a subject pairing.
type teacherRefClearer interface {
	ClearSubjectRef(ctx context.Context, subjectID string) error
}

type subjectAttendanceRemover interface {
	DeleteBySubject(ctx context.Context, subjectID string) (int64, error)
}

// SubjectInput is one entry in a bulk subject submission.
type SubjectInput struct {
	Name     string `json:"subName" validate:"required"`
	Sessions int    `json:"sessions" validate:"required,min=1"`
}

// CreateSubjectsRequest adds one or more subjects to a class in a single
// call.
type CreateSubjectsRequest struct {
	ClassID  string         `json:"sclassName" validate:"required"`
	SchoolID string         `json:"adminID" validate:"required"`
	Subjects []SubjectInput `json:"subjects" validate:"required,min=1,dive"`
}

// SubjectService handles academic subjects and their teacher pairing.
type SubjectService struct {
	repo       subjectRepository
	teachers   teacherRefClearer
	attendance subjectAttendanceRemover
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewSubjectService constructs a SubjectService.
func NewSubjectService(repo subjectRepository, teachers teacherRefClearer, attendance subjectAttendanceRemover, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{
		repo:       repo,
		teachers:   teachers,
		attendance: attendance,
		validator:  validate,
		logger:     logger,
	}
}

// Create adds the submitted subjects to a class. The whole batch is
// rejected when any name already exists in the class.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectsRequest) ([]models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	for _, input := range req.Subjects {
		taken, err := s.repo.ExistsByName(ctx, req.ClassID, input.Name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject name")
		}
		if taken {
			return nil, appErrors.ErrSubjectExists
		}
	}

	created := make([]models.Subject, 0, len(req.Subjects))
	for _, input := range req.Subjects {
		subject := &models.Subject{
			Name:     input.Name,
			Sessions: input.Sessions,
			ClassID:  req.ClassID,
			SchoolID: req.SchoolID,
		}
		if err := s.repo.Create(ctx, subject); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
		}
		created = append(created, *subject)
	}

	s.logger.Info("subjects created", zap.String("class_id", req.ClassID), zap.Int("count", len(created)))
	return created, nil
}

// Get returns one subject with resolved class and teacher display fields.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.SubjectDetail, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "No subject found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}

// ListBySchool returns every subject of a school.
func (s *SubjectService) ListBySchool(ctx context.Context, schoolID string) ([]models.SubjectDetail, error) {
	subjects, err := s.repo.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// ListByClass returns the subjects taught in one class.
func (s *SubjectService) ListByClass(ctx context.Context, classID string) ([]models.SubjectDetail, error) {
	subjects, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class subjects")
	}
	return subjects, nil
}

// ListFreeByClass returns the class subjects that have no teacher yet.
func (s *SubjectService) ListFreeByClass(ctx context.Context, classID string) ([]models.SubjectDetail, error) {
	subjects, err := s.repo.ListFreeByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list free subjects")
	}
	return subjects, nil
}

// Delete removes one subject, releasing any teacher that held it and
// dropping its attendance marks, and returns the deleted record.
func (s *SubjectService) Delete(ctx context.Context, id string) (*models.SubjectDetail, error) {
	subject, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "Subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	if err := s.teachers.ClearSubjectRef(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to release teacher")
	}
	if _, err := s.attendance.DeleteBySubject(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear subject attendance")
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}

	s.logger.Info("subject deleted", zap.String("subject_id", id))
	return subject, nil
}

// DeleteBySchool removes every subject of a school and reports the count.
func (s *SubjectService) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	count, err := s.repo.DeleteBySchool(ctx, schoolID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school subjects")
	}
	return count, nil
}

// DeleteByClass removes every subject of a class and reports the count.
func (s *SubjectService) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	count, err := s.repo.DeleteByClass(ctx, classID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class subjects")
	}
	return count, nil
}
