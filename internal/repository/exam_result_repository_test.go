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

func TestExamResultRepositoryUpsertDefaultsTotalMarks(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExamResultRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "subject_id", "marks_obtained", "total_marks", "created_at", "updated_at"}).
		AddRow("r1", "st1", "sub1", 80.0, 100.0, time.Now(), time.Now())
	mock.ExpectQuery("INSERT INTO exam_results").
		WithArgs(sqlmock.AnyArg(), "st1", "sub1", 80.0, 100.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(rows)

	stored, err := repo.Upsert(context.Background(), &models.ExamResult{
		StudentID:     "st1",
		SubjectID:     "sub1",
		MarksObtained: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(100), stored.TotalMarks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamResultRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewExamResultRepository(db)

	name := "Maths"
	rows := sqlmock.NewRows([]string{"subject_id", "subject_name", "marks_obtained", "total_marks"}).
		AddRow("sub1", name, 90.0, 100.0)
	mock.ExpectQuery("SELECT er.subject_id, sub.name AS subject_name").
		WithArgs("st1").
		WillReturnRows(rows)

	entries, err := repo.ListByStudent(context.Background(), "st1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 90.0, entries[0].MarksObtained)
	require.NotNil(t, entries[0].SubjectName)
	assert.Equal(t, "Maths", *entries[0].SubjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
