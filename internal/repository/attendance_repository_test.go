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

func TestAttendanceRepositoryUpsertStudentTruncatesDate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	marked := time.Date(2024, 1, 1, 14, 30, 12, 0, time.UTC)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "student_id", "date", "status", "subject_id", "created_at", "updated_at"}).
		AddRow("att1", "st1", day, "Present", "sub1", time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO student_attendance").
		WithArgs(sqlmock.AnyArg(), "st1", day, "Present", "sub1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	stored, err := repo.UpsertStudent(context.Background(), &models.StudentAttendance{
		StudentID: "st1",
		Date:      marked,
		Status:    models.AttendanceStatusPresent,
		SubjectID: "sub1",
	})
	require.NoError(t, err)
	assert.Equal(t, day, stored.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpsertTeacher(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "teacher_id", "date", "status", "created_at", "updated_at"}).
		AddRow("att1", "t1", day, "Leave", time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO teacher_attendance").
		WithArgs(sqlmock.AnyArg(), "t1", day, "Leave", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	stored, err := repo.UpsertTeacher(context.Background(), &models.TeacherAttendance{
		TeacherID: "t1",
		Date:      day.Add(9 * time.Hour),
		Status:    models.AttendanceStatusLeave,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceStatusLeave, stored.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryScopedClears(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("DELETE FROM student_attendance WHERE subject_id =").
		WithArgs("sub1").
		WillReturnResult(sqlmock.NewResult(0, 7))
	count, err := repo.DeleteBySubject(context.Background(), "sub1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	mock.ExpectExec("DELETE FROM student_attendance sa USING students s").
		WithArgs("school1").
		WillReturnResult(sqlmock.NewResult(0, 42))
	count, err = repo.DeleteBySchool(context.Background(), "school1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)

	mock.ExpectExec("DELETE FROM student_attendance WHERE student_id = (.+) AND subject_id =").
		WithArgs("st1", "sub1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	count, err = repo.DeleteByStudentSubject(context.Background(), "st1", "sub1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
