package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

// NoticeRepository manages persistence for notices.
type NoticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository constructs a NoticeRepository.
func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// FindByID fetches a notice by ID.
func (r *NoticeRepository) FindByID(ctx context.Context, id string) (*models.Notice, error) {
	const query = `SELECT id, title, details, date, school_id, created_at, updated_at FROM notices WHERE id = $1`
	var notice models.Notice
	if err := r.db.GetContext(ctx, &notice, query, id); err != nil {
		return nil, err
	}
	return &notice, nil
}

// ListBySchool returns the school's notices, newest first.
func (r *NoticeRepository) ListBySchool(ctx context.Context, schoolID string) ([]models.Notice, error) {
	const query = `SELECT id, title, details, date, school_id, created_at, updated_at FROM notices WHERE school_id = $1 ORDER BY date DESC`
	var notices []models.Notice
	if err := r.db.SelectContext(ctx, &notices, query, schoolID); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// Create inserts a new notice.
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = now
	}
	if notice.Date.IsZero() {
		notice.Date = now
	}
	notice.UpdatedAt = now
	const query = `INSERT INTO notices (id, title, details, date, school_id, created_at, updated_at)
        VALUES (:id, :title, :details, :date, :school_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, notice); err != nil {
		return fmt.Errorf("create notice: %w", err)
	}
	return nil
}

// Update modifies an existing notice.
func (r *NoticeRepository) Update(ctx context.Context, notice *models.Notice) error {
	notice.UpdatedAt = time.Now().UTC()
	const query = `UPDATE notices SET title = :title, details = :details, date = :date, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, notice); err != nil {
		return fmt.Errorf("update notice: %w", err)
	}
	return nil
}

// Delete removes one notice and reports whether a row was deleted.
func (r *NoticeRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notices WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete notice: %w", err)
	}
	return res.RowsAffected()
}

// DeleteBySchool removes every notice of a school and reports the count.
func (r *NoticeRepository) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notices WHERE school_id = $1", schoolID)
	if err != nil {
		return 0, fmt.Errorf("delete notices by school: %w", err)
	}
	return res.RowsAffected()
}
