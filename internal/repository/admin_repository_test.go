package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-mgmt-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAdminRepositoryExistsByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM admins WHERE LOWER(email) = LOWER($1) LIMIT 1")).
		WithArgs("head@school.edu").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "head@school.edu", "")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryExistsBySchoolNameMiss(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM admins WHERE LOWER(school_name) = LOWER($1) LIMIT 1")).
		WithArgs("Greenwood High").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err := repo.ExistsBySchoolName(context.Background(), "Greenwood High", "")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectExec("INSERT INTO admins").
		WillReturnResult(sqlmock.NewResult(1, 1))

	admin := &models.Admin{Name: "Head", Email: "head@school.edu", Password: "hashed", Role: "Admin", SchoolName: "Greenwood High"}
	require.NoError(t, repo.Create(context.Background(), admin))

	assert.NotEmpty(t, admin.ID)
	assert.False(t, admin.JoiningDate.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), admin.UpdatedAt, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "role", "school_name", "phone", "address", "qualification", "bio", "joining_date", "school_banner", "school_logo", "profile_pic", "created_at", "updated_at"}).
		AddRow("a1", "Head", "head@school.edu", "hashed", "Admin", "Greenwood High", "", "", "", "", now, "", `uploads\logo.png`, "", now, now)
	mock.ExpectQuery("SELECT (.+) FROM admins WHERE id =").
		WithArgs("a1").
		WillReturnRows(rows)

	admin, err := repo.FindByID(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "Greenwood High", admin.SchoolName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
