package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type complaintRepository interface {
	ListBySchool(ctx context.Context, schoolID string) ([]models.Complaint, error)
	Create(ctx context.Context, complaint *models.Complaint) error
}

// CreateComplaintRequest files a grievance against a school.
type CreateComplaintRequest struct {
	UserID    string    `json:"user" validate:"required"`
	Complaint string    `json:"complaint" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	SchoolID  string    `json:"school" validate:"required"`
}

// ComplaintService handles write-once grievances.
type ComplaintService struct {
	repo      complaintRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewComplaintService constructs a ComplaintService.
func NewComplaintService(repo complaintRepository, validate *validator.Validate, logger *zap.Logger) *ComplaintService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{repo: repo, validator: validate, logger: logger}
}

// Create files a complaint.
func (s *ComplaintService) Create(ctx context.Context, req CreateComplaintRequest) (*models.Complaint, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid complaint payload")
	}

	complaint := &models.Complaint{
		UserID:    req.UserID,
		Complaint: req.Complaint,
		Date:      req.Date,
		SchoolID:  req.SchoolID,
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create complaint")
	}

	s.logger.Info("complaint filed", zap.String("school_id", complaint.SchoolID))
	return complaint, nil
}

// ListBySchool returns every complaint filed against a school.
func (s *ComplaintService) ListBySchool(ctx context.Context, schoolID string) ([]models.Complaint, error) {
	complaints, err := s.repo.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list complaints")
	}
	return complaints, nil
}
