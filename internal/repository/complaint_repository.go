package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

// ComplaintRepository manages persistence for complaints.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository constructs a ComplaintRepository.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// ListBySchool returns the school's complaints, newest first.
func (r *ComplaintRepository) ListBySchool(ctx context.Context, schoolID string) ([]models.Complaint, error) {
	const query = `SELECT id, user_id, complaint, date, school_id, created_at FROM complaints WHERE school_id = $1 ORDER BY date DESC`
	var complaints []models.Complaint
	if err := r.db.SelectContext(ctx, &complaints, query, schoolID); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return complaints, nil
}

// Create inserts a new complaint.
func (r *ComplaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if complaint.CreatedAt.IsZero() {
		complaint.CreatedAt = now
	}
	if complaint.Date.IsZero() {
		complaint.Date = now
	}
	const query = `INSERT INTO complaints (id, user_id, complaint, date, school_id, created_at)
        VALUES (:id, :user_id, :complaint, :date, :school_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, complaint); err != nil {
		return fmt.Errorf("create complaint: %w", err)
	}
	return nil
}
