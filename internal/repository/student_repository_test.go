package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

func studentRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "name", "roll_num", "password", "admission_number", "admission_date", "status", "dob", "gender", "email", "phone", "address",
		"blood_group", "father_name", "father_occupation", "mother_name", "guardian_phone", "student_image", "role", "class_id", "school_id",
		"created_at", "updated_at", "class_name", "school_name", "school_logo",
	}).AddRow(
		"st1", "Alina", 7, "hashed", "ADM-001", now, "Active", nil, "", "", "", "",
		"", "", "", "", "", "", "Student", "c1", "school1",
		now, now, "Class 5", "Greenwood High", "uploads/logo.png",
	)
}

func TestStudentRepositoryFindByCredential(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("FROM students s").
		WithArgs("ADM-001", "Alina").
		WillReturnRows(studentRows())

	student, err := repo.FindByCredential(context.Background(), "ADM-001", "Alina")
	require.NoError(t, err)
	assert.Equal(t, "st1", student.ID)
	assert.Equal(t, "Class 5", student.ClassName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExistsDuplicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT 1 FROM students").
		WithArgs("school1", 7, "c1", "ADM-001").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsDuplicate(context.Background(), "school1", "c1", 7, "ADM-001")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{Name: "Alina", RollNum: 7, Password: "hashed", AdmissionNumber: "ADM-001", Status: models.StudentStatusActive, Role: "Student", ClassID: "c1", SchoolID: "school1"}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.False(t, student.AdmissionDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryBulkDeletes(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("DELETE FROM students WHERE school_id =").
		WithArgs("school1").
		WillReturnResult(sqlmock.NewResult(0, 12))
	count, err := repo.DeleteBySchool(context.Background(), "school1")
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)

	mock.ExpectExec("DELETE FROM students WHERE class_id =").
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	count, err = repo.DeleteByClass(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
