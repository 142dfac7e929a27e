package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type mockStudentRepo struct {
	students map[string]models.Student
	fees     map[string][]models.FeeRecord
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]models.Student), fees: make(map[string][]models.FeeRecord)}
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	if s, ok := m.students[id]; ok {
		return &models.StudentDetail{Student: s}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) FindByCredential(ctx context.Context, identifier, name string) (*models.StudentDetail, error) {
	for _, s := range m.students {
		if s.Name == name && (s.AdmissionNumber == identifier || strconv.Itoa(s.RollNum) == identifier) {
			return &models.StudentDetail{Student: s}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ListBySchool(ctx context.Context, schoolID string) ([]models.StudentDetail, error) {
	var out []models.StudentDetail
	for _, s := range m.students {
		if s.SchoolID == schoolID {
			out = append(out, models.StudentDetail{Student: s})
		}
	}
	return out, nil
}

func (m *mockStudentRepo) ListByClass(ctx context.Context, classID string) ([]models.StudentDetail, error) {
	var out []models.StudentDetail
	for _, s := range m.students {
		if s.ClassID == classID {
			out = append(out, models.StudentDetail{Student: s})
		}
	}
	return out, nil
}

func (m *mockStudentRepo) ExistsDuplicate(ctx context.Context, schoolID, classID string, rollNum int, admissionNumber string) (bool, error) {
	for _, s := range m.students {
		if s.AdmissionNumber == admissionNumber {
			return true, nil
		}
		if s.SchoolID == schoolID && s.ClassID == classID && s.RollNum == rollNum {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = "generated"
	}
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := m.students[id]; !ok {
		return 0, nil
	}
	delete(m.students, id)
	return 1, nil
}

func (m *mockStudentRepo) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	var n int64
	for id, s := range m.students {
		if s.SchoolID == schoolID {
			delete(m.students, id)
			n++
		}
	}
	return n, nil
}

func (m *mockStudentRepo) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	var n int64
	for id, s := range m.students {
		if s.ClassID == classID {
			delete(m.students, id)
			n++
		}
	}
	return n, nil
}

func (m *mockStudentRepo) ListFees(ctx context.Context, studentID string) ([]models.FeeRecord, error) {
	return m.fees[studentID], nil
}

type mockAttendanceRepo struct {
	student map[string][]models.StudentAttendance
	teacher map[string][]models.TeacherAttendance
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{
		student: make(map[string][]models.StudentAttendance),
		teacher: make(map[string][]models.TeacherAttendance),
	}
}

func (m *mockAttendanceRepo) UpsertStudent(ctx context.Context, record *models.StudentAttendance) (*models.StudentAttendance, error) {
	record.Date = models.TruncateToDay(record.Date)
	rows := m.student[record.StudentID]
	for i, r := range rows {
		if r.Date.Equal(record.Date) && r.SubjectID == record.SubjectID {
			rows[i].Status = record.Status
			return &rows[i], nil
		}
	}
	m.student[record.StudentID] = append(rows, *record)
	return record, nil
}

func (m *mockAttendanceRepo) UpsertTeacher(ctx context.Context, record *models.TeacherAttendance) (*models.TeacherAttendance, error) {
	record.Date = models.TruncateToDay(record.Date)
	rows := m.teacher[record.TeacherID]
	for i, r := range rows {
		if r.Date.Equal(record.Date) {
			rows[i].Status = record.Status
			return &rows[i], nil
		}
	}
	m.teacher[record.TeacherID] = append(rows, *record)
	return record, nil
}

func (m *mockAttendanceRepo) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceEntry, error) {
	var out []models.AttendanceEntry
	for _, r := range m.student[studentID] {
		subj := r.SubjectID
		out = append(out, models.AttendanceEntry{Date: r.Date, Status: r.Status, SubjectID: &subj})
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.AttendanceEntry, error) {
	var out []models.AttendanceEntry
	for _, r := range m.teacher[teacherID] {
		out = append(out, models.AttendanceEntry{Date: r.Date, Status: r.Status})
	}
	return out, nil
}

func (m *mockAttendanceRepo) DeleteBySubject(ctx context.Context, subjectID string) (int64, error) {
	var n int64
	for id, rows := range m.student {
		kept := rows[:0]
		for _, r := range rows {
			if r.SubjectID == subjectID {
				n++
				continue
			}
			kept = append(kept, r)
		}
		m.student[id] = kept
	}
	return n, nil
}

func (m *mockAttendanceRepo) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	var n int64
	for id, rows := range m.student {
		n += int64(len(rows))
		m.student[id] = nil
	}
	return n, nil
}

func (m *mockAttendanceRepo) DeleteByStudentSubject(ctx context.Context, studentID, subjectID string) (int64, error) {
	rows := m.student[studentID]
	kept := rows[:0]
	var n int64
	for _, r := range rows {
		if r.SubjectID == subjectID {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.student[studentID] = kept
	return n, nil
}

func (m *mockAttendanceRepo) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	n := int64(len(m.student[studentID]))
	m.student[studentID] = nil
	return n, nil
}

type mockExamResultRepo struct {
	results map[string][]models.ExamResult
}

func newMockExamResultRepo() *mockExamResultRepo {
	return &mockExamResultRepo{results: make(map[string][]models.ExamResult)}
}

func (m *mockExamResultRepo) Upsert(ctx context.Context, result *models.ExamResult) (*models.ExamResult, error) {
	if result.TotalMarks <= 0 {
		result.TotalMarks = models.DefaultTotalMarks
	}
	rows := m.results[result.StudentID]
	for i, r := range rows {
		if r.SubjectID == result.SubjectID {
			rows[i].MarksObtained = result.MarksObtained
			rows[i].TotalMarks = result.TotalMarks
			return &rows[i], nil
		}
	}
	m.results[result.StudentID] = append(rows, *result)
	return result, nil
}

func (m *mockExamResultRepo) ListByStudent(ctx context.Context, studentID string) ([]models.ExamResultEntry, error) {
	var out []models.ExamResultEntry
	for _, r := range m.results[studentID] {
		out = append(out, models.ExamResultEntry{SubjectID: r.SubjectID, MarksObtained: r.MarksObtained, TotalMarks: r.TotalMarks})
	}
	return out, nil
}

func newStudentService(repo *mockStudentRepo, att *mockAttendanceRepo, exams *mockExamResultRepo) *StudentService {
	return NewStudentService(repo, att, exams, fakeHasher{}, validator.New(), zap.NewNop())
}

func TestStudentServiceRegister(t *testing.T) {
	repo := newMockStudentRepo()
	svc := newStudentService(repo, newMockAttendanceRepo(), newMockExamResultRepo())

	student, err := svc.Register(context.Background(), RegisterStudentRequest{
		Name:            "Alice",
		RollNum:         7,
		Password:        "secret",
		AdmissionNumber: "ADM-001",
		ClassID:         "class-1",
		SchoolID:        "school-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatusActive, student.Status)
	assert.Equal(t, "Student", student.Role)
	assert.Equal(t, "hashed:secret", repo.students[student.ID].Password)
}

func TestStudentServiceRegisterDuplicateRoll(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", RollNum: 7, AdmissionNumber: "ADM-001", ClassID: "class-1", SchoolID: "school-1"}
	svc := newStudentService(repo, newMockAttendanceRepo(), newMockExamResultRepo())

	_, err := svc.Register(context.Background(), RegisterStudentRequest{
		Name:            "Bob",
		RollNum:         7,
		Password:        "secret",
		AdmissionNumber: "ADM-002",
		ClassID:         "class-1",
		SchoolID:        "school-1",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Roll Number or Admission Number already exists", appErr.Message)
}

func TestStudentServiceLoginWrongPassword(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Alice", AdmissionNumber: "ADM-001", Password: "hashed:secret"}
	svc := newStudentService(repo, newMockAttendanceRepo(), newMockExamResultRepo())

	_, err := svc.Login(context.Background(), LoginStudentRequest{RollNum: "ADM-001", StudentName: "Alice", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
}

func TestStudentServiceLoginNotFound(t *testing.T) {
	svc := newStudentService(newMockStudentRepo(), newMockAttendanceRepo(), newMockExamResultRepo())

	_, err := svc.Login(context.Background(), LoginStudentRequest{RollNum: "ADM-404", StudentName: "Ghost", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestStudentServiceLoginOmitsRecords(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Alice", AdmissionNumber: "ADM-001", Password: "hashed:secret"}
	att := newMockAttendanceRepo()
	att.student["s1"] = []models.StudentAttendance{{StudentID: "s1", SubjectID: "sub-1", Status: models.AttendanceStatusPresent}}
	svc := newStudentService(repo, att, newMockExamResultRepo())

	student, err := svc.Login(context.Background(), LoginStudentRequest{RollNum: "ADM-001", StudentName: "Alice", Password: "secret"})
	require.NoError(t, err)
	assert.Nil(t, student.Attendance)
	assert.Nil(t, student.ExamResults)
}

func TestStudentServiceLoginNumericRollNum(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Alice", RollNum: 12, AdmissionNumber: "ADM-001", Password: "hashed:secret"}
	svc := newStudentService(repo, newMockAttendanceRepo(), newMockExamResultRepo())

	var req LoginStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"rollNum":12,"studentName":"Alice","password":"secret"}`), &req))
	assert.Equal(t, RollNumber("12"), req.RollNum)

	student, err := svc.Login(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "s1", student.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"rollNum":"ADM-001","studentName":"Alice","password":"secret"}`), &req))
	_, err = svc.Login(context.Background(), req)
	require.NoError(t, err)
}

func TestStudentServiceMarkAttendanceOverwrites(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Alice"}
	att := newMockAttendanceRepo()
	svc := newStudentService(repo, att, newMockExamResultRepo())

	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	_, err := svc.MarkAttendance(context.Background(), "s1", StudentAttendanceRequest{
		SubjectID: "sub-1", Status: models.AttendanceStatusAbsent, Date: morning,
	})
	require.NoError(t, err)

	afternoon := morning.Add(6 * time.Hour)
	student, err := svc.MarkAttendance(context.Background(), "s1", StudentAttendanceRequest{
		SubjectID: "sub-1", Status: models.AttendanceStatusPresent, Date: afternoon,
	})
	require.NoError(t, err)
	require.Len(t, student.Attendance, 1)
	assert.Equal(t, models.AttendanceStatusPresent, student.Attendance[0].Status)
}

func TestStudentServiceMarkAttendanceRejectsBadStatus(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1"}
	svc := newStudentService(repo, newMockAttendanceRepo(), newMockExamResultRepo())

	_, err := svc.MarkAttendance(context.Background(), "s1", StudentAttendanceRequest{
		SubjectID: "sub-1", Status: "Late", Date: time.Now(),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestStudentServiceExamResultDefaultTotal(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1"}
	svc := newStudentService(repo, newMockAttendanceRepo(), newMockExamResultRepo())

	student, err := svc.UpsertExamResult(context.Background(), "s1", ExamResultRequest{
		SubjectID: "sub-1", MarksObtained: 82,
	})
	require.NoError(t, err)
	require.Len(t, student.ExamResults, 1)
	assert.Equal(t, float64(models.DefaultTotalMarks), student.ExamResults[0].TotalMarks)
}

func TestStudentServiceExamResultOverwrites(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1"}
	svc := newStudentService(repo, newMockAttendanceRepo(), newMockExamResultRepo())

	_, err := svc.UpsertExamResult(context.Background(), "s1", ExamResultRequest{SubjectID: "sub-1", MarksObtained: 40})
	require.NoError(t, err)
	student, err := svc.UpsertExamResult(context.Background(), "s1", ExamResultRequest{SubjectID: "sub-1", MarksObtained: 73})
	require.NoError(t, err)
	require.Len(t, student.ExamResults, 1)
	assert.Equal(t, 73.0, student.ExamResults[0].MarksObtained)
}

func TestStudentServiceClearStudentSubjectAttendance(t *testing.T) {
	att := newMockAttendanceRepo()
	att.student["s1"] = []models.StudentAttendance{
		{StudentID: "s1", SubjectID: "sub-1", Status: models.AttendanceStatusPresent},
		{StudentID: "s1", SubjectID: "sub-2", Status: models.AttendanceStatusAbsent},
	}
	svc := newStudentService(newMockStudentRepo(), att, newMockExamResultRepo())

	count, err := svc.ClearStudentSubjectAttendance(context.Background(), "s1", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, att.student["s1"], 1)
}

func TestStudentServiceDeleteReturnsRecord(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Alice", SchoolID: "school-1"}
	svc := newStudentService(repo, newMockAttendanceRepo(), newMockExamResultRepo())

	deleted, err := svc.Delete(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", deleted.Name)
	assert.Empty(t, repo.students)
}

func TestStudentServiceUpdatePartial(t *testing.T) {
	repo := newMockStudentRepo()
	repo.students["s1"] = models.Student{ID: "s1", Name: "Alice", RollNum: 7, Status: models.StudentStatusActive}
	svc := newStudentService(repo, newMockAttendanceRepo(), newMockExamResultRepo())

	roll := 9
	updated, err := svc.Update(context.Background(), "s1", UpdateStudentRequest{RollNum: &roll})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.RollNum)
	assert.Equal(t, "Alice", updated.Name)
}
