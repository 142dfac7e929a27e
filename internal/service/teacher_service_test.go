package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type mockTeacherRepo struct {
	teachers map[string]models.Teacher
	byEmail  map[string]string
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]models.Teacher), byEmail: make(map[string]string)}
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id string) (*models.TeacherDetail, error) {
	if tr, ok := m.teachers[id]; ok {
		return &models.TeacherDetail{Teacher: tr}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) FindByEmail(ctx context.Context, email string) (*models.TeacherDetail, error) {
	if id, ok := m.byEmail[email]; ok {
		tr := m.teachers[id]
		return &models.TeacherDetail{Teacher: tr}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) ListBySchool(ctx context.Context, schoolID string) ([]models.TeacherDetail, error) {
	var out []models.TeacherDetail
	for _, tr := range m.teachers {
		if tr.SchoolID == schoolID {
			out = append(out, models.TeacherDetail{Teacher: tr})
		}
	}
	return out, nil
}

func (m *mockTeacherRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	id, ok := m.byEmail[email]
	return ok && (excludeID == "" || id != excludeID), nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = "generated"
	}
	m.teachers[teacher.ID] = *teacher
	m.byEmail[teacher.Email] = teacher.ID
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	m.teachers[teacher.ID] = *teacher
	return nil
}

func (m *mockTeacherRepo) AssignSubject(ctx context.Context, teacherID, subjectID string) error {
	tr := m.teachers[teacherID]
	tr.SubjectID = &subjectID
	m.teachers[teacherID] = tr
	return nil
}

func (m *mockTeacherRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := m.teachers[id]; !ok {
		return 0, nil
	}
	delete(m.teachers, id)
	return 1, nil
}

func (m *mockTeacherRepo) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	var n int64
	for id, tr := range m.teachers {
		if tr.SchoolID == schoolID {
			delete(m.teachers, id)
			n++
		}
	}
	return n, nil
}

func (m *mockTeacherRepo) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	var n int64
	for id, tr := range m.teachers {
		if tr.ClassID == classID {
			delete(m.teachers, id)
			n++
		}
	}
	return n, nil
}

type mockSubjectAssigner struct {
	claimed map[string]string
	cleared []string
}

func newMockSubjectAssigner() *mockSubjectAssigner {
	return &mockSubjectAssigner{claimed: make(map[string]string)}
}

func (m *mockSubjectAssigner) SetTeacher(ctx context.Context, subjectID, teacherID string) error {
	m.claimed[subjectID] = teacherID
	return nil
}

func (m *mockSubjectAssigner) ClearTeacherRef(ctx context.Context, teacherID string) error {
	m.cleared = append(m.cleared, teacherID)
	for subjectID, holder := range m.claimed {
		if holder == teacherID {
			delete(m.claimed, subjectID)
		}
	}
	return nil
}

func newTeacherService(repo *mockTeacherRepo, subjects *mockSubjectAssigner, att *mockAttendanceRepo) *TeacherService {
	return NewTeacherService(repo, subjects, att, fakeHasher{}, nil, validator.New(), zap.NewNop())
}

func TestTeacherServiceRegisterClaimsSubject(t *testing.T) {
	repo := newMockTeacherRepo()
	subjects := newMockSubjectAssigner()
	svc := newTeacherService(repo, subjects, newMockAttendanceRepo())

	teacher, err := svc.Register(context.Background(), RegisterTeacherRequest{
		Name:      "Carol",
		Email:     "carol@school.test",
		Password:  "secret",
		Phone:     "0300-1234567",
		ClassID:   "class-1",
		SchoolID:  "school-1",
		SubjectID: "sub-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Teacher", teacher.Role)
	require.NotNil(t, teacher.SubjectID)
	assert.Equal(t, "sub-1", *teacher.SubjectID)
	assert.Equal(t, teacher.ID, subjects.claimed["sub-1"])
}

func TestTeacherServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newMockTeacherRepo()
	repo.byEmail["carol@school.test"] = "existing"
	svc := newTeacherService(repo, newMockSubjectAssigner(), newMockAttendanceRepo())

	_, err := svc.Register(context.Background(), RegisterTeacherRequest{
		Name: "Carol", Email: "carol@school.test", Password: "secret", Phone: "0300-1234567", ClassID: "class-1", SchoolID: "school-1",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusOK, appErr.Status)
	assert.Equal(t, "Email already exists", appErr.Message)
}

func TestTeacherServiceRegisterRequiresPhone(t *testing.T) {
	repo := newMockTeacherRepo()
	svc := newTeacherService(repo, newMockSubjectAssigner(), newMockAttendanceRepo())

	_, err := svc.Register(context.Background(), RegisterTeacherRequest{
		Name: "Carol", Email: "carol@school.test", Password: "secret", ClassID: "class-1", SchoolID: "school-1",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Empty(t, repo.teachers)
}

func TestTeacherServiceLoginNotFound(t *testing.T) {
	svc := newTeacherService(newMockTeacherRepo(), newMockSubjectAssigner(), newMockAttendanceRepo())

	_, err := svc.Login(context.Background(), LoginTeacherRequest{Email: "ghost@school.test", Password: "x"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusOK, appErr.Status)
	assert.Equal(t, "Teacher not found", appErr.Message)
}

func TestTeacherServiceAssignSubjectOverwrites(t *testing.T) {
	repo := newMockTeacherRepo()
	repo.teachers["t1"] = models.Teacher{ID: "t1", SchoolID: "school-1"}
	subjects := newMockSubjectAssigner()
	subjects.claimed["sub-1"] = "someone-else"
	svc := newTeacherService(repo, subjects, newMockAttendanceRepo())

	teacher, err := svc.AssignSubject(context.Background(), AssignSubjectRequest{TeacherID: "t1", SubjectID: "sub-1"})
	require.NoError(t, err)
	require.NotNil(t, teacher.SubjectID)
	assert.Equal(t, "sub-1", *teacher.SubjectID)
	assert.Equal(t, "t1", subjects.claimed["sub-1"])
}

func TestTeacherServiceDeleteReleasesSubject(t *testing.T) {
	repo := newMockTeacherRepo()
	repo.teachers["t1"] = models.Teacher{ID: "t1", Name: "Carol", SchoolID: "school-1"}
	subjects := newMockSubjectAssigner()
	subjects.claimed["sub-1"] = "t1"
	svc := newTeacherService(repo, subjects, newMockAttendanceRepo())

	deleted, err := svc.Delete(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "Carol", deleted.Name)
	assert.Empty(t, subjects.claimed)
	assert.Empty(t, repo.teachers)
}

func TestTeacherServiceMarkAttendanceOverwrites(t *testing.T) {
	repo := newMockTeacherRepo()
	repo.teachers["t1"] = models.Teacher{ID: "t1", SchoolID: "school-1"}
	att := newMockAttendanceRepo()
	svc := newTeacherService(repo, newMockSubjectAssigner(), att)

	day := time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC)
	_, err := svc.MarkAttendance(context.Background(), "t1", TeacherAttendanceRequest{Status: models.AttendanceStatusAbsent, Date: day})
	require.NoError(t, err)

	teacher, err := svc.MarkAttendance(context.Background(), "t1", TeacherAttendanceRequest{Status: models.AttendanceStatusPresent, Date: day.Add(4 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, teacher.Attendance, 1)
	assert.Equal(t, models.AttendanceStatusPresent, teacher.Attendance[0].Status)
}

func TestTeacherServiceUpdateRehashesPassword(t *testing.T) {
	repo := newMockTeacherRepo()
	repo.teachers["t1"] = models.Teacher{ID: "t1", Password: "hashed:old", SchoolID: "school-1", Status: models.TeacherStatusActive}
	svc := newTeacherService(repo, newMockSubjectAssigner(), newMockAttendanceRepo())

	_, err := svc.Update(context.Background(), "t1", UpdateTeacherRequest{Password: "new"})
	require.NoError(t, err)
	assert.Equal(t, "hashed:new", repo.teachers["t1"].Password)
}
