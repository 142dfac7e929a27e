package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

const subjectDetailQuery = `SELECT s.id, s.name, s.sessions, s.class_id, s.school_id, s.teacher_id, s.created_at, s.updated_at,
        COALESCE(c.name, '') AS class_name, t.name AS teacher_name
        FROM subjects s
        LEFT JOIN classes c ON c.id = s.class_id
        LEFT JOIN teachers t ON t.id = s.teacher_id`

// FindByID returns a subject with resolved class and teacher names.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.SubjectDetail, error) {
	query := subjectDetailQuery + " WHERE s.id = $1"
	var detail models.SubjectDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListBySchool returns every subject of a school.
func (r *SubjectRepository) ListBySchool(ctx context.Context, schoolID string) ([]models.SubjectDetail, error) {
	query := subjectDetailQuery + " WHERE s.school_id = $1 ORDER BY s.created_at DESC"
	var subjects []models.SubjectDetail
	if err := r.db.SelectContext(ctx, &subjects, query, schoolID); err != nil {
		return nil, fmt.Errorf("list school subjects: %w", err)
	}
	return subjects, nil
}

// ListByClass returns the subjects of one class.
func (r *SubjectRepository) ListByClass(ctx context.Context, classID string) ([]models.SubjectDetail, error) {
	query := subjectDetailQuery + " WHERE s.class_id = $1 ORDER BY s.created_at DESC"
	var subjects []models.SubjectDetail
	if err := r.db.SelectContext(ctx, &subjects, query, classID); err != nil {
		return nil, fmt.Errorf("list class subjects: %w", err)
	}
	return subjects, nil
}

// ListFreeByClass returns the class subjects with no teacher assigned.
func (r *SubjectRepository) ListFreeByClass(ctx context.Context, classID string) ([]models.SubjectDetail, error) {
	query := subjectDetailQuery + " WHERE s.class_id = $1 AND s.teacher_id IS NULL ORDER BY s.created_at DESC"
	var subjects []models.SubjectDetail
	if err := r.db.SelectContext(ctx, &subjects, query, classID); err != nil {
		return nil, fmt.Errorf("list free subjects: %w", err)
	}
	return subjects, nil
}

// ExistsByName checks uniqueness of the subject name within a class.
func (r *SubjectRepository) ExistsByName(ctx context.Context, classID, name string) (bool, error) {
	const query = `SELECT 1 FROM subjects WHERE class_id = $1 AND LOWER(name) = LOWER($2) LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, classID, name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check subject name: %w", err)
	}
	return true, nil
}

// Create inserts a new subject record.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = now
	}
	subject.UpdatedAt = now
	const query = `INSERT INTO subjects (id, name, sessions, class_id, school_id, teacher_id, created_at, updated_at)
        VALUES (:id, :name, :sessions, :class_id, :school_id, :teacher_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// SetTeacher points the subject's back-reference at the given teacher. An
// empty teacher ID clears it.
func (r *SubjectRepository) SetTeacher(ctx context.Context, subjectID string, teacherID string) error {
	var teacher interface{}
	if teacherID != "" {
		teacher = teacherID
	}
	const query = `UPDATE subjects SET teacher_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, subjectID, teacher, time.Now().UTC()); err != nil {
		return fmt.Errorf("set subject teacher: %w", err)
	}
	return nil
}

// ClearTeacherRef detaches the subject held by the given teacher without
// deleting the subject.
func (r *SubjectRepository) ClearTeacherRef(ctx context.Context, teacherID string) error {
	const query = `UPDATE subjects SET teacher_id = NULL, updated_at = $2 WHERE teacher_id = $1`
	if _, err := r.db.ExecContext(ctx, query, teacherID, time.Now().UTC()); err != nil {
		return fmt.Errorf("clear subject teacher ref: %w", err)
	}
	return nil
}

// Delete removes one subject and reports whether a row was deleted.
func (r *SubjectRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM subjects WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete subject: %w", err)
	}
	return res.RowsAffected()
}

// DeleteBySchool removes every subject of a school and reports the count.
func (r *SubjectRepository) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM subjects WHERE school_id = $1", schoolID)
	if err != nil {
		return 0, fmt.Errorf("delete subjects by school: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByClass removes every subject of a class and reports the count.
func (r *SubjectRepository) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM subjects WHERE class_id = $1", classID)
	if err != nil {
		return 0, fmt.Errorf("delete subjects by class: %w", err)
	}
	return res.RowsAffected()
}
