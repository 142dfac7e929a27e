package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

// ExamResultRepository handles per-subject exam results for students.
type ExamResultRepository struct {
	db *sqlx.DB
}

// NewExamResultRepository constructs an ExamResultRepository.
func NewExamResultRepository(db *sqlx.DB) *ExamResultRepository {
	return &ExamResultRepository{db: db}
}

// Upsert inserts or updates the student's result for one subject. The key is
// (student, subject); re-submission updates marks in place.
func (r *ExamResultRepository) Upsert(ctx context.Context, result *models.ExamResult) (*models.ExamResult, error) {
	now := time.Now().UTC()
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	if result.TotalMarks <= 0 {
		result.TotalMarks = models.DefaultTotalMarks
	}
	result.UpdatedAt = now
	const query = `INSERT INTO exam_results (id, student_id, subject_id, marks_obtained, total_marks, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (student_id, subject_id)
DO UPDATE SET marks_obtained = EXCLUDED.marks_obtained, total_marks = EXCLUDED.total_marks, updated_at = EXCLUDED.updated_at
RETURNING id, student_id, subject_id, marks_obtained, total_marks, created_at, updated_at`
	var stored models.ExamResult
	if err := r.db.GetContext(ctx, &stored, query, result.ID, result.StudentID, result.SubjectID, result.MarksObtained, result.TotalMarks, result.CreatedAt, result.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert exam result: %w", err)
	}
	return &stored, nil
}

// ListByStudent returns a student's results with resolved subject names.
func (r *ExamResultRepository) ListByStudent(ctx context.Context, studentID string) ([]models.ExamResultEntry, error) {
	const query = `SELECT er.subject_id, sub.name AS subject_name, er.marks_obtained, er.total_marks
        FROM exam_results er
        LEFT JOIN subjects sub ON sub.id = er.subject_id
        WHERE er.student_id = $1 ORDER BY er.created_at ASC`
	var entries []models.ExamResultEntry
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("list exam results: %w", err)
	}
	return entries, nil
}
