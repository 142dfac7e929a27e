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

// TeacherRepository manages persistence for teacher records.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

const teacherColumns = `t.id, t.name, t.email, t.password, t.role, t.gender, t.dob, t.phone, t.cnic, t.teacher_image, t.address, t.qualification, t.experience, t.joining_date, t.designation, t.bio, t.salary, t.status, t.school_id, t.class_id, t.subject_id, t.created_at, t.updated_at`

const teacherDetailQuery = `SELECT ` + teacherColumns + `,
        COALESCE(c.name, '') AS class_name, sub.name AS subject_name, sub.sessions AS subject_sessions,
        COALESCE(a.school_name, '') AS school_name, COALESCE(a.school_logo, '') AS school_logo
        FROM teachers t
        LEFT JOIN classes c ON c.id = t.class_id
        LEFT JOIN subjects sub ON sub.id = t.subject_id
        LEFT JOIN admins a ON a.id = t.school_id`

// FindByID fetches a teacher with resolved class, subject and school fields.
func (r *TeacherRepository) FindByID(ctx context.Context, id string) (*models.TeacherDetail, error) {
	query := teacherDetailQuery + " WHERE t.id = $1"
	var detail models.TeacherDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByEmail fetches a teacher with resolved references by email.
func (r *TeacherRepository) FindByEmail(ctx context.Context, email string) (*models.TeacherDetail, error) {
	query := teacherDetailQuery + " WHERE LOWER(t.email) = LOWER($1)"
	var detail models.TeacherDetail
	if err := r.db.GetContext(ctx, &detail, query, email); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListBySchool returns the school's teachers with resolved references.
func (r *TeacherRepository) ListBySchool(ctx context.Context, schoolID string) ([]models.TeacherDetail, error) {
	query := teacherDetailQuery + " WHERE t.school_id = $1 ORDER BY t.created_at DESC"
	var teachers []models.TeacherDetail
	if err := r.db.SelectContext(ctx, &teachers, query, schoolID); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// ExistsByEmail checks global uniqueness of the teacher email.
func (r *TeacherRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM teachers WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher email: %w", err)
	}
	return true, nil
}

// Create inserts a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = now
	}
	if teacher.JoiningDate.IsZero() {
		teacher.JoiningDate = now
	}
	teacher.UpdatedAt = now
	const query = `INSERT INTO teachers (id, name, email, password, role, gender, dob, phone, cnic, teacher_image, address, qualification, experience, joining_date, designation, bio, salary, status, school_id, class_id, subject_id, created_at, updated_at)
        VALUES (:id, :name, :email, :password, :role, :gender, :dob, :phone, :cnic, :teacher_image, :address, :qualification, :experience, :joining_date, :designation, :bio, :salary, :status, :school_id, :class_id, :subject_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update modifies an existing teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teachers SET name = :name, email = :email, password = :password, gender = :gender, dob = :dob, phone = :phone, cnic = :cnic, teacher_image = :teacher_image, address = :address, qualification = :qualification, experience = :experience, designation = :designation, bio = :bio, salary = :salary, status = :status, class_id = :class_id, subject_id = :subject_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// AssignSubject points the teacher at a subject.
func (r *TeacherRepository) AssignSubject(ctx context.Context, teacherID, subjectID string) error {
	const query = `UPDATE teachers SET subject_id = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, teacherID, subjectID, time.Now().UTC()); err != nil {
		return fmt.Errorf("assign teacher subject: %w", err)
	}
	return nil
}

// ClearSubjectRef detaches any teacher pointing at the given subject.
func (r *TeacherRepository) ClearSubjectRef(ctx context.Context, subjectID string) error {
	const query = `UPDATE teachers SET subject_id = NULL, updated_at = $2 WHERE subject_id = $1`
	if _, err := r.db.ExecContext(ctx, query, subjectID, time.Now().UTC()); err != nil {
		return fmt.Errorf("clear teacher subject ref: %w", err)
	}
	return nil
}

// Delete removes one teacher and reports whether a row was deleted.
func (r *TeacherRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM teachers WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete teacher: %w", err)
	}
	return res.RowsAffected()
}

// DeleteBySchool removes every teacher of a school and reports the count.
func (r *TeacherRepository) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM teachers WHERE school_id = $1", schoolID)
	if err != nil {
		return 0, fmt.Errorf("delete teachers by school: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByClass removes every teacher of a class and reports the count.
func (r *TeacherRepository) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM teachers WHERE class_id = $1", classID)
	if err != nil {
		return 0, fmt.Errorf("delete teachers by class: %w", err)
	}
	return res.RowsAffected()
}
