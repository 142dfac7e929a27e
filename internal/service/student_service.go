package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/storage"
)

type studentRepository interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	FindByCredential(ctx context.Context, identifier, name string) (*models.StudentDetail, error)
	ListBySchool(ctx context.Context, schoolID string) ([]models.StudentDetail, error)
	ListByClass(ctx context.Context, classID string) ([]models.StudentDetail, error)
	ExistsDuplicate(ctx context.Context, schoolID, classID string, rollNum int, admissionNumber string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteBySchool(ctx context.Context, schoolID string) (int64, error)
	DeleteByClass(ctx context.Context, classID string) (int64, error)
	ListFees(ctx context.Context, studentID string) ([]models.FeeRecord, error)
}

type studentAttendanceRepository interface {
	UpsertStudent(ctx context.Context, record *models.StudentAttendance) (*models.StudentAttendance, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceEntry, error)
	DeleteBySubject(ctx context.Context, subjectID string) (int64, error)
	DeleteBySchool(ctx context.Context, schoolID string) (int64, error)
	DeleteByStudentSubject(ctx context.Context, studentID, subjectID string) (int64, error)
	DeleteByStudent(ctx context.Context, studentID string) (int64, error)
}

type examResultRepository interface {
	Upsert(ctx context.Context, result *models.ExamResult) (*models.ExamResult, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.ExamResultEntry, error)
}

// RegisterStudentRequest captures the student enrolment payload.
type RegisterStudentRequest struct {
	Name             string     `json:"name" validate:"required"`
	RollNum          int        `json:"rollNum" validate:"required"`
	Password         string     `json:"password" validate:"required"`
	AdmissionNumber  string     `json:"admissionNumber" validate:"required"`
	ClassID          string     `json:"sclassName" validate:"required"`
	SchoolID         string     `json:"adminID" validate:"required"`
	AdmissionDate    *time.Time `json:"admissionDate"`
	DOB              *time.Time `json:"dob"`
	Gender           string     `json:"gender"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	BloodGroup       string     `json:"bloodGroup"`
	FatherName       string     `json:"fatherName"`
	FatherOccupation string     `json:"fatherOccupation"`
	MotherName       string     `json:"motherName"`
	GuardianPhone    string     `json:"guardianPhone"`
}

// RollNumber is the login identifier. Clients send roll numbers as JSON
// numbers and admission numbers as strings, so both decode to string form.
type RollNumber string

// UnmarshalJSON accepts string and numeric values.
func (r *RollNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = RollNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = RollNumber(n.String())
	return nil
}

// LoginStudentRequest identifies a student by roll or admission number plus
// name; both columns are matched against the same identifier.
type LoginStudentRequest struct {
	RollNum     RollNumber `json:"rollNum" validate:"required"`
	StudentName string     `json:"studentName" validate:"required"`
	Password    string     `json:"password" validate:"required"`
}

// UpdateStudentRequest carries a partial student update.
type UpdateStudentRequest struct {
	Name             *string               `json:"name" form:"name"`
	RollNum          *int                  `json:"rollNum" form:"rollNum"`
	Password         string                `json:"password" form:"password"`
	ClassID          *string               `json:"sclassName" form:"sclassName"`
	Status           *models.StudentStatus `json:"status" form:"status"`
	DOB              *time.Time            `json:"dob" form:"dob"`
	Gender           *string               `json:"gender" form:"gender"`
	Email            *string               `json:"email" form:"email"`
	Phone            *string               `json:"phone" form:"phone"`
	Address          *string               `json:"address" form:"address"`
	BloodGroup       *string               `json:"bloodGroup" form:"bloodGroup"`
	FatherName       *string               `json:"fatherName" form:"fatherName"`
	FatherOccupation *string               `json:"fatherOccupation" form:"fatherOccupation"`
	MotherName       *string               `json:"motherName" form:"motherName"`
	GuardianPhone    *string               `json:"guardianPhone" form:"guardianPhone"`
	StudentImage     string                `json:"-"`
}

// StudentAttendanceRequest marks one day's per-subject attendance.
type StudentAttendanceRequest struct {
	SubjectID string                  `json:"subName" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required"`
	Date      time.Time               `json:"date" validate:"required"`
}

// ExamResultRequest submits one subject's marks. A missing or non-positive
// total falls back to the default.
type ExamResultRequest struct {
	SubjectID     string  `json:"subName" validate:"required"`
	MarksObtained float64 `json:"marksObtained"`
	TotalMarks    float64 `json:"totalMarks"`
}

// StudentService handles enrolment, authentication and the per-student
// attendance and exam-result records.
type StudentService struct {
	repo       studentRepository
	attendance studentAttendanceRepository
	results    examResultRepository
	hasher     credentialHasher
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, attendance studentAttendanceRepository, results examResultRepository, hasher credentialHasher, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:       repo,
		attendance: attendance,
		results:    results,
		hasher:     hasher,
		validator:  validate,
		logger:     logger,
	}
}

// Register enrols a student. Roll number is unique within (school, class);
// the admission number is unique across the whole system.
func (s *StudentService) Register(ctx context.Context, req RegisterStudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	taken, err := s.repo.ExistsDuplicate(ctx, req.SchoolID, req.ClassID, req.RollNum, req.AdmissionNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student uniqueness")
	}
	if taken {
		return nil, appErrors.ErrStudentDuplicate
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student := &models.Student{
		Name:             req.Name,
		RollNum:          req.RollNum,
		Password:         hashed,
		AdmissionNumber:  req.AdmissionNumber,
		Status:           models.StudentStatusActive,
		DOB:              req.DOB,
		Gender:           req.Gender,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		BloodGroup:       req.BloodGroup,
		FatherName:       req.FatherName,
		FatherOccupation: req.FatherOccupation,
		MotherName:       req.MotherName,
		GuardianPhone:    req.GuardianPhone,
		Role:             "Student",
		ClassID:          req.ClassID,
		SchoolID:         req.SchoolID,
	}
	if req.AdmissionDate != nil {
		student.AdmissionDate = *req.AdmissionDate
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.logger.Info("student registered", zap.String("student_id", student.ID), zap.String("school_id", student.SchoolID))
	return s.Get(ctx, student.ID)
}

// Login authenticates a student. The identifier matches either the roll
// number or the admission number; the response omits attendance and exam
// results.
func (s *StudentService) Login(ctx context.Context, req LoginStudentRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Roll number, name and password are required")
	}

	student, err := s.repo.FindByCredential(ctx, string(req.RollNum), req.StudentName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrStudentNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}

	if !s.hasher.Verify(req.Password, student.Password) {
		return nil, appErrors.ErrStudentInvalidPassword
	}

	return sanitizeStudent(student), nil
}

// Get returns one student with class and school display fields plus the
// embedded attendance, exam-result and fee records.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrStudentNotFound, "No student found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return s.attachRecords(ctx, student)
}

// ListBySchool returns every student of a school, newest first.
func (s *StudentService) ListBySchool(ctx context.Context, schoolID string) ([]models.StudentDetail, error) {
	students, err := s.repo.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	for i := range students {
		sanitizeStudent(&students[i])
	}
	return students, nil
}

// ListByClass returns the students of one class ordered by roll number.
func (s *StudentService) ListByClass(ctx context.Context, classID string) ([]models.StudentDetail, error) {
	students, err := s.repo.ListByClass(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class students")
	}
	for i := range students {
		sanitizeStudent(&students[i])
	}
	return students, nil
}

// Update applies a partial student update, re-hashing the password when a
// new one is supplied.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.StudentDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrStudentNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	student := &detail.Student
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.RollNum != nil {
		student.RollNum = *req.RollNum
	}
	if req.ClassID != nil {
		student.ClassID = *req.ClassID
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid student status")
		}
		student.Status = *req.Status
	}
	if req.DOB != nil {
		student.DOB = req.DOB
	}
	if req.Gender != nil {
		student.Gender = *req.Gender
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.Address != nil {
		student.Address = *req.Address
	}
	if req.BloodGroup != nil {
		student.BloodGroup = *req.BloodGroup
	}
	if req.FatherName != nil {
		student.FatherName = *req.FatherName
	}
	if req.FatherOccupation != nil {
		student.FatherOccupation = *req.FatherOccupation
	}
	if req.MotherName != nil {
		student.MotherName = *req.MotherName
	}
	if req.GuardianPhone != nil {
		student.GuardianPhone = *req.GuardianPhone
	}
	if req.Password != "" {
		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		student.Password = hashed
	}
	if req.StudentImage != "" {
		student.StudentImage = req.StudentImage
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return s.Get(ctx, id)
}

// Delete removes one student and returns the deleted record. Attendance,
// exam results and fees go with it.
func (s *StudentService) Delete(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrStudentNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	s.logger.Info("student deleted", zap.String("student_id", id))
	return sanitizeStudent(student), nil
}

// DeleteBySchool removes every student of a school and reports the count.
func (s *StudentService) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	count, err := s.repo.DeleteBySchool(ctx, schoolID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school students")
	}
	return count, nil
}

// DeleteByClass removes every student of a class and reports the count.
func (s *StudentService) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	count, err := s.repo.DeleteByClass(ctx, classID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class students")
	}
	return count, nil
}

// MarkAttendance records one day's status for a subject. A repeat mark for
// the same (day, subject) overwrites the previous status.
func (s *StudentService) MarkAttendance(ctx context.Context, studentID string, req StudentAttendanceRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid attendance status")
	}

	record := &models.StudentAttendance{
		StudentID: studentID,
		Date:      req.Date,
		Status:    req.Status,
		SubjectID: req.SubjectID,
	}
	if _, err := s.attendance.UpsertStudent(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	return s.Get(ctx, studentID)
}

// UpsertExamResult records marks for one subject, overwriting any previous
// submission for the same subject.
func (s *StudentService) UpsertExamResult(ctx context.Context, studentID string, req ExamResultRequest) (*models.StudentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam result payload")
	}

	result := &models.ExamResult{
		StudentID:     studentID,
		SubjectID:     req.SubjectID,
		MarksObtained: req.MarksObtained,
		TotalMarks:    req.TotalMarks,
	}
	if _, err := s.results.Upsert(ctx, result); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record exam result")
	}
	return s.Get(ctx, studentID)
}

// ClearAttendanceBySubject drops every student's marks for one subject.
func (s *StudentService) ClearAttendanceBySubject(ctx context.Context, subjectID string) (int64, error) {
	count, err := s.attendance.DeleteBySubject(ctx, subjectID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear subject attendance")
	}
	return count, nil
}

// ClearAttendanceBySchool drops every attendance mark across a school.
func (s *StudentService) ClearAttendanceBySchool(ctx context.Context, schoolID string) (int64, error) {
	count, err := s.attendance.DeleteBySchool(ctx, schoolID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear school attendance")
	}
	return count, nil
}

// ClearStudentSubjectAttendance drops one student's marks for one subject.
func (s *StudentService) ClearStudentSubjectAttendance(ctx context.Context, studentID, subjectID string) (int64, error) {
	count, err := s.attendance.DeleteByStudentSubject(ctx, studentID, subjectID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear student subject attendance")
	}
	return count, nil
}

// ClearStudentAttendance drops every mark for one student.
func (s *StudentService) ClearStudentAttendance(ctx context.Context, studentID string) (int64, error) {
	count, err := s.attendance.DeleteByStudent(ctx, studentID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear student attendance")
	}
	return count, nil
}

func (s *StudentService) attachRecords(ctx context.Context, student *models.StudentDetail) (*models.StudentDetail, error) {
	results, err := s.results.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam results")
	}
	attendance, err := s.attendance.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	fees, err := s.repo.ListFees(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load fee records")
	}
	student.ExamResults = results
	student.Attendance = attendance
	student.Fees = fees
	return sanitizeStudent(student), nil
}

func sanitizeStudent(student *models.StudentDetail) *models.StudentDetail {
	student.StudentImage = storage.NormalizePath(student.StudentImage)
	student.SchoolLogo = storage.NormalizePath(student.SchoolLogo)
	return student
}
