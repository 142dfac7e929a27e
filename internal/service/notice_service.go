package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type noticeRepository interface {
	FindByID(ctx context.Context, id string) (*models.Notice, error)
	ListBySchool(ctx context.Context, schoolID string) ([]models.Notice, error)
	Create(ctx context.Context, notice *models.Notice) error
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteBySchool(ctx context.Context, schoolID string) (int64, error)
}

// CreateNoticeRequest posts a school-wide announcement.
type CreateNoticeRequest struct {
	Title    string    `json:"title" validate:"required"`
	Details  string    `json:"details" validate:"required"`
	Date     time.Time `json:"date" validate:"required"`
	SchoolID string    `json:"adminID" validate:"required"`
}

// UpdateNoticeRequest carries a partial notice update.
type UpdateNoticeRequest struct {
	Title   *string    `json:"title"`
	Details *string    `json:"details"`
	Date    *time.Time `json:"date"`
}

// NoticeService handles school announcements.
type NoticeService struct {
	repo      noticeRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewNoticeService constructs a NoticeService.
func NewNoticeService(repo noticeRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *NoticeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoticeService{repo: repo, cache: cache, validator: validate, logger: logger}
}

func noticesCacheKey(schoolID string) string {
	return "notices:school:" + schoolID
}

// Create posts a notice.
func (s *NoticeService) Create(ctx context.Context, req CreateNoticeRequest) (*models.Notice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload")
	}

	notice := &models.Notice{
		Title:    req.Title,
		Details:  req.Details,
		Date:     req.Date,
		SchoolID: req.SchoolID,
	}
	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create notice")
	}

	s.cache.Invalidate(ctx, noticesCacheKey(req.SchoolID))
	return notice, nil
}

// ListBySchool returns every notice of a school, newest first, read through
// the list cache when one is attached.
func (s *NoticeService) ListBySchool(ctx context.Context, schoolID string) ([]models.Notice, error) {
	key := noticesCacheKey(schoolID)
	var cached []models.Notice
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	notices, err := s.repo.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notices")
	}
	if len(notices) > 0 {
		s.cache.Set(ctx, key, notices)
	}
	return notices, nil
}

// Update applies a partial notice update.
func (s *NoticeService) Update(ctx context.Context, id string, req UpdateNoticeRequest) (*models.Notice, error) {
	notice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "Notice not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notice")
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Details != nil {
		notice.Details = *req.Details
	}
	if req.Date != nil {
		notice.Date = *req.Date
	}

	if err := s.repo.Update(ctx, notice); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update notice")
	}

	s.cache.Invalidate(ctx, noticesCacheKey(notice.SchoolID))
	return notice, nil
}

// Delete removes one notice and returns the deleted record.
func (s *NoticeService) Delete(ctx context.Context, id string) (*models.Notice, error) {
	notice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "Notice not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load notice")
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete notice")
	}

	s.cache.Invalidate(ctx, noticesCacheKey(notice.SchoolID))
	return notice, nil
}

// DeleteBySchool removes every notice of a school and reports the count.
func (s *NoticeService) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	count, err := s.repo.DeleteBySchool(ctx, schoolID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school notices")
	}
	s.cache.Invalidate(ctx, noticesCacheKey(schoolID))
	return count, nil
}
