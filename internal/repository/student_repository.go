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

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `s.id, s.name, s.roll_num, s.password, s.admission_number, s.admission_date, s.status, s.dob, s.gender, s.email, s.phone, s.address, s.blood_group, s.father_name, s.father_occupation, s.mother_name, s.guardian_phone, s.student_image, s.role, s.class_id, s.school_id, s.created_at, s.updated_at`

const studentDetailQuery = `SELECT ` + studentColumns + `,
        COALESCE(c.name, '') AS class_name, COALESCE(a.school_name, '') AS school_name, COALESCE(a.school_logo, '') AS school_logo
        FROM students s
        LEFT JOIN classes c ON c.id = s.class_id
        LEFT JOIN admins a ON a.id = s.school_id`

// FindByID fetches a student with resolved class and school fields.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	query := studentDetailQuery + " WHERE s.id = $1"
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByCredential looks a student up by roll number or admission number plus
// the declared name. The identifier matches either field, mirroring the login
// form which accepts both.
func (r *StudentRepository) FindByCredential(ctx context.Context, identifier, name string) (*models.StudentDetail, error) {
	query := studentDetailQuery + " WHERE (CAST(s.roll_num AS TEXT) = $1 OR s.admission_number = $1) AND s.name = $2 LIMIT 1"
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, identifier, name); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListBySchool returns the school's students, newest admissions first.
func (r *StudentRepository) ListBySchool(ctx context.Context, schoolID string) ([]models.StudentDetail, error) {
	query := studentDetailQuery + " WHERE s.school_id = $1 ORDER BY s.created_at DESC"
	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, schoolID); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListByClass returns the students of one class.
func (r *StudentRepository) ListByClass(ctx context.Context, classID string) ([]models.StudentDetail, error) {
	query := studentDetailQuery + " WHERE s.class_id = $1 ORDER BY s.roll_num ASC"
	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list class students: %w", err)
	}
	return students, nil
}

// ExistsDuplicate checks for a clashing roll number within the class or a
// clashing admission number, scoped to the school.
func (r *StudentRepository) ExistsDuplicate(ctx context.Context, schoolID, classID string, rollNum int, admissionNumber string) (bool, error) {
	const query = `SELECT 1 FROM students
        WHERE school_id = $1 AND ((roll_num = $2 AND class_id = $3) OR admission_number = $4) LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, schoolID, rollNum, classID, admissionNumber); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student duplicate: %w", err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	if student.AdmissionDate.IsZero() {
		student.AdmissionDate = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, name, roll_num, password, admission_number, admission_date, status, dob, gender, email, phone, address, blood_group, father_name, father_occupation, mother_name, guardian_phone, student_image, role, class_id, school_id, created_at, updated_at)
        VALUES (:id, :name, :roll_num, :password, :admission_number, :admission_date, :status, :dob, :gender, :email, :phone, :address, :blood_group, :father_name, :father_occupation, :mother_name, :guardian_phone, :student_image, :role, :class_id, :school_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET name = :name, roll_num = :roll_num, password = :password, admission_number = :admission_number, status = :status, dob = :dob, gender = :gender, email = :email, phone = :phone, address = :address, blood_group = :blood_group, father_name = :father_name, father_occupation = :father_occupation, mother_name = :mother_name, guardian_phone = :guardian_phone, student_image = :student_image, class_id = :class_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes one student. Attendance, exam results and fees cascade at
// the schema level.
func (r *StudentRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}
	return res.RowsAffected()
}

// DeleteBySchool removes every student of a school and reports the count.
func (r *StudentRepository) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE school_id = $1", schoolID)
	if err != nil {
		return 0, fmt.Errorf("delete students by school: %w", err)
	}
	return res.RowsAffected()
}

// DeleteByClass removes every student of a class and reports the count.
func (r *StudentRepository) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM students WHERE class_id = $1", classID)
	if err != nil {
		return 0, fmt.Errorf("delete students by class: %w", err)
	}
	return res.RowsAffected()
}

// ListFees returns a student's fee entries, oldest first.
func (r *StudentRepository) ListFees(ctx context.Context, studentID string) ([]models.FeeRecord, error) {
	const query = `SELECT id, student_id, month, amount, status, paid_date FROM student_fees WHERE student_id = $1 ORDER BY id`
	var fees []models.FeeRecord
	if err := r.db.SelectContext(ctx, &fees, query, studentID); err != nil {
		return nil, fmt.Errorf("list student fees: %w", err)
	}
	return fees, nil
}
