package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

// AttendanceRepository handles per-student and per-teacher attendance marks.
// Both follow the same keyed-upsert shape; only the conflict key differs:
// (student, date, subject) for students, (teacher, date) for teachers.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// UpsertStudent inserts or updates a student's mark for (date, subject).
// Dates are truncated to day granularity before the keyed write.
func (r *AttendanceRepository) UpsertStudent(ctx context.Context, record *models.StudentAttendance) (*models.StudentAttendance, error) {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	record.Date = models.TruncateToDay(record.Date)
	const query = `INSERT INTO student_attendance (id, student_id, date, status, subject_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (student_id, date, subject_id)
DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
RETURNING id, student_id, date, status, subject_id, created_at, updated_at`
	var stored models.StudentAttendance
	if err := r.db.GetContext(ctx, &stored, query, record.ID, record.StudentID, record.Date, record.Status, record.SubjectID, record.CreatedAt, record.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert student attendance: %w", err)
	}
	return &stored, nil
}

// UpsertTeacher inserts or updates a teacher's mark for the day.
func (r *AttendanceRepository) UpsertTeacher(ctx context.Context, record *models.TeacherAttendance) (*models.TeacherAttendance, error) {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	record.Date = models.TruncateToDay(record.Date)
	const query = `INSERT INTO teacher_attendance (id, teacher_id, date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (teacher_id, date)
DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
RETURNING id, teacher_id, date, status, created_at, updated_at`
	var stored models.TeacherAttendance
	if err := r.db.GetContext(ctx, &stored, query, record.ID, record.TeacherID, record.Date, record.Status, record.CreatedAt, record.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert teacher attendance: %w", err)
	}
	return &stored, nil
}

// ListByStudent returns a student's marks with resolved subject fields.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceEntry, error) {
	const query = `SELECT sa.date, sa.status, sa.subject_id, sub.name AS subject_name, sub.sessions AS subject_sessions
        FROM student_attendance sa
        LEFT JOIN subjects sub ON sub.id = sa.subject_id
        WHERE sa.student_id = $1 ORDER BY sa.date ASC`
	var entries []models.AttendanceEntry
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	return entries, nil
}

// ListByTeacher returns a teacher's daily marks.
func (r *AttendanceRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.AttendanceEntry, error) {
	const query = `SELECT date, status, NULL AS subject_id, NULL AS subject_name, NULL AS subject_sessions
        FROM teacher_attendance WHERE teacher_id = $1 ORDER BY date ASC`
	var entries []models.AttendanceEntry
	if err := r.db.SelectContext(ctx, &entries, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher attendance: %w", err)
	}
	return entries, nil
}

// Bulk clear operations below are single scoped deletes, never row-by-row.

// DeleteBySubject removes every student's marks for one subject.
func (r *AttendanceRepository) DeleteBySubject(ctx context.Context, subjectID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM student_attendance WHERE subject_id = $1", subjectID)
	if err != nil {
		return 0, fmt.Errorf("clear attendance by subject: %w", err)
	}
	return res.RowsAffected()
}

// DeleteBySchool removes every student mark within a school.
func (r *AttendanceRepository) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	const query = `DELETE FROM student_attendance sa USING students s WHERE sa.student_id = s.id AND s.school_id = $1`
	res, err := r.db.ExecContext(ctx, query, schoolID)
	if err != nil {
		return 0, fmt.Errorf("clear attendance by school: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByStudentSubject removes one student's marks for one subject.
func (r *AttendanceRepository) DeleteByStudentSubject(ctx context.Context, studentID, subjectID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM student_attendance WHERE student_id = $1 AND subject_id = $2", studentID, subjectID)
	if err != nil {
		return 0, fmt.Errorf("clear student subject attendance: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByStudent removes a student's entire attendance list.
func (r *AttendanceRepository) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM student_attendance WHERE student_id = $1", studentID)
	if err != nil {
		return 0, fmt.Errorf("clear student attendance: %w", err)
	}
	return res.RowsAffected()
}
