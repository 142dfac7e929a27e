package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/storage"
)

type teacherRepository interface {
	FindByID(ctx context.Context, id string) (*models.TeacherDetail, error)
	FindByEmail(ctx context.Context, email string) (*models.TeacherDetail, error)
	ListBySchool(ctx context.Context, schoolID string) ([]models.TeacherDetail, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	AssignSubject(ctx context.Context, teacherID, subjectID string) error
	Delete(ctx context.Context, id string) (int64, error)
	DeleteBySchool(ctx context.Context, schoolID string) (int64, error)
	DeleteByClass(ctx context.Context, classID string) (int64, error)
}

// subjectAssigner maintains the subject side of the teacher/subject pairing.
type subjectAssigner interface {
	SetTeacher(ctx context.Context, subjectID, teacherID string) error
	ClearTeacherRef(ctx context.Context, teacherID string) error
}

type teacherAttendanceRepository interface {
	UpsertTeacher(ctx context.Context, record *models.TeacherAttendance) (*models.TeacherAttendance, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.AttendanceEntry, error)
}

// RegisterTeacherRequest captures the teacher registration payload.
type RegisterTeacherRequest struct {
	Name          string     `json:"name" validate:"required"`
	Email         string     `json:"email" validate:"required,email"`
	Password      string     `json:"password" validate:"required"`
	ClassID       string     `json:"teachSclass" validate:"required"`
	SchoolID      string     `json:"school" validate:"required"`
	SubjectID     string     `json:"teachSubject"`
	Gender        string     `json:"gender"`
	DOB           *time.Time `json:"dob"`
	Phone         string     `json:"phone" validate:"required"`
	CNIC          string     `json:"cnic"`
	Address       string     `json:"address"`
	Qualification string     `json:"qualification"`
	Experience    string     `json:"experience"`
	JoiningDate   *time.Time `json:"joiningDate"`
	Designation   string     `json:"designation"`
	Bio           string     `json:"bio"`
	Salary        float64    `json:"salary"`
}

// LoginTeacherRequest identifies a teacher by email.
type LoginTeacherRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateTeacherRequest carries a partial teacher update.
type UpdateTeacherRequest struct {
	Name          *string               `json:"name" form:"name"`
	Email         *string               `json:"email" form:"email"`
	Password      string                `json:"password" form:"password"`
	ClassID       *string               `json:"teachSclass" form:"teachSclass"`
	Gender        *string               `json:"gender" form:"gender"`
	DOB           *time.Time            `json:"dob" form:"dob"`
	Phone         *string               `json:"phone" form:"phone"`
	CNIC          *string               `json:"cnic" form:"cnic"`
	Address       *string               `json:"address" form:"address"`
	Qualification *string               `json:"qualification" form:"qualification"`
	Experience    *string               `json:"experience" form:"experience"`
	Designation   *string               `json:"designation" form:"designation"`
	Bio           *string               `json:"bio" form:"bio"`
	Salary        *float64              `json:"salary" form:"salary"`
	Status        *models.TeacherStatus `json:"status" form:"status"`
	TeacherImage  string                `json:"-"`
}

// AssignSubjectRequest pairs a teacher with a subject; both sides of the
// pairing are overwritten.
type AssignSubjectRequest struct {
	TeacherID string `json:"teacherId" validate:"required"`
	SubjectID string `json:"teachSubject" validate:"required"`
}

// TeacherAttendanceRequest marks one day's status for a teacher.
type TeacherAttendanceRequest struct {
	Status models.AttendanceStatus `json:"status" validate:"required"`
	Date   time.Time               `json:"date" validate:"required"`
}

// TeacherService handles teaching-staff workflows, including the
// subject pairing and daily attendance.
type TeacherService struct {
	repo       teacherRepository
	subjects   subjectAssigner
	attendance teacherAttendanceRepository
	hasher     credentialHasher
	cache      *CacheService
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, subjects subjectAssigner, attendance teacherAttendanceRepository, hasher credentialHasher, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{
		repo:       repo,
		subjects:   subjects,
		attendance: attendance,
		hasher:     hasher,
		cache:      cache,
		validator:  validate,
		logger:     logger,
	}
}

func teachersCacheKey(schoolID string) string {
	return "teachers:school:" + schoolID
}

// Register creates a teacher and, when a subject was named, claims it for
// the new teacher.
func (s *TeacherService) Register(ctx context.Context, req RegisterTeacherRequest) (*models.TeacherDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	taken, err := s.repo.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher email")
	}
	if taken {
		return nil, appErrors.ErrEmailExists
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	teacher := &models.Teacher{
		Name:          req.Name,
		Email:         req.Email,
		Password:      hashed,
		Role:          "Teacher",
		Gender:        req.Gender,
		DOB:           req.DOB,
		Phone:         req.Phone,
		CNIC:          req.CNIC,
		Address:       req.Address,
		Qualification: req.Qualification,
		Experience:    req.Experience,
		Designation:   req.Designation,
		Bio:           req.Bio,
		Salary:        req.Salary,
		Status:        models.TeacherStatusActive,
		SchoolID:      req.SchoolID,
		ClassID:       req.ClassID,
	}
	if req.JoiningDate != nil {
		teacher.JoiningDate = *req.JoiningDate
	}
	if req.SubjectID != "" {
		teacher.SubjectID = &req.SubjectID
	}

	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	if req.SubjectID != "" {
		if err := s.subjects.SetTeacher(ctx, req.SubjectID, teacher.ID); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to claim subject")
		}
	}

	s.cache.Invalidate(ctx, teachersCacheKey(req.SchoolID))
	s.logger.Info("teacher registered", zap.String("teacher_id", teacher.ID), zap.String("school_id", teacher.SchoolID))
	return s.Get(ctx, teacher.ID)
}

// Login authenticates a teacher by email. Failures come back as message
// outcomes, never as 4xx/5xx.
func (s *TeacherService) Login(ctx context.Context, req LoginTeacherRequest) (*models.TeacherDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Email and password are required")
	}

	teacher, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "Teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch teacher")
	}

	if !s.hasher.Verify(req.Password, teacher.Password) {
		return nil, appErrors.ErrInvalidPassword
	}

	return s.attachAttendance(ctx, teacher)
}

// Get returns one teacher with class, subject and school display fields
// plus the attendance record.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.TeacherDetail, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "No teacher found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return s.attachAttendance(ctx, teacher)
}

// ListBySchool returns every teacher of a school, read through the list
// cache when one is attached.
func (s *TeacherService) ListBySchool(ctx context.Context, schoolID string) ([]models.TeacherDetail, error) {
	key := teachersCacheKey(schoolID)
	var cached []models.TeacherDetail
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	teachers, err := s.repo.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	for i := range teachers {
		sanitizeTeacher(&teachers[i])
	}
	if len(teachers) > 0 {
		s.cache.Set(ctx, key, teachers)
	}
	return teachers, nil
}

// Update applies a partial teacher update.
func (s *TeacherService) Update(ctx context.Context, id string, req UpdateTeacherRequest) (*models.TeacherDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "Teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	teacher := &detail.Teacher
	if req.Name != nil {
		teacher.Name = *req.Name
	}
	if req.Email != nil {
		teacher.Email = *req.Email
	}
	if req.ClassID != nil {
		teacher.ClassID = *req.ClassID
	}
	if req.Gender != nil {
		teacher.Gender = *req.Gender
	}
	if req.DOB != nil {
		teacher.DOB = req.DOB
	}
	if req.Phone != nil {
		teacher.Phone = *req.Phone
	}
	if req.CNIC != nil {
		teacher.CNIC = *req.CNIC
	}
	if req.Address != nil {
		teacher.Address = *req.Address
	}
	if req.Qualification != nil {
		teacher.Qualification = *req.Qualification
	}
	if req.Experience != nil {
		teacher.Experience = *req.Experience
	}
	if req.Designation != nil {
		teacher.Designation = *req.Designation
	}
	if req.Bio != nil {
		teacher.Bio = *req.Bio
	}
	if req.Salary != nil {
		teacher.Salary = *req.Salary
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid teacher status")
		}
		teacher.Status = *req.Status
	}
	if req.Password != "" {
		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		teacher.Password = hashed
	}
	if req.TeacherImage != "" {
		teacher.TeacherImage = req.TeacherImage
	}

	if err := s.repo.Update(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update teacher")
	}

	s.cache.Invalidate(ctx, teachersCacheKey(teacher.SchoolID))
	return s.Get(ctx, id)
}

// AssignSubject pairs a teacher with a subject, overwriting both sides of
// the pairing without checking for an existing holder.
func (s *TeacherService) AssignSubject(ctx context.Context, req AssignSubjectRequest) (*models.TeacherDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	teacher, err := s.repo.FindByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "Teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	if err := s.repo.AssignSubject(ctx, req.TeacherID, req.SubjectID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign subject")
	}
	if err := s.subjects.SetTeacher(ctx, req.SubjectID, req.TeacherID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to claim subject")
	}

	s.cache.Invalidate(ctx, teachersCacheKey(teacher.SchoolID))
	return s.Get(ctx, req.TeacherID)
}

// Delete removes one teacher, releasing any subject that referenced them,
// and returns the deleted record.
func (s *TeacherService) Delete(ctx context.Context, id string) (*models.TeacherDetail, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "Teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	if err := s.subjects.ClearTeacherRef(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to release subject")
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teacher")
	}

	s.cache.Invalidate(ctx, teachersCacheKey(teacher.SchoolID))
	s.logger.Info("teacher deleted", zap.String("teacher_id", id))
	return sanitizeTeacher(teacher), nil
}

// DeleteBySchool removes every teacher of a school and reports the count.
// Subject back-references are released by the schema.
func (s *TeacherService) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	count, err := s.repo.DeleteBySchool(ctx, schoolID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete school teachers")
	}
	s.cache.Invalidate(ctx, teachersCacheKey(schoolID))
	return count, nil
}

// DeleteByClass removes every teacher of a class and reports the count. The
// class does not identify a school here, so all teacher lists are dropped.
func (s *TeacherService) DeleteByClass(ctx context.Context, classID string) (int64, error) {
	count, err := s.repo.DeleteByClass(ctx, classID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class teachers")
	}
	s.cache.Invalidate(ctx, "teachers:school:*")
	return count, nil
}

// MarkAttendance records one day's status. Teacher marks are keyed by day
// alone; a repeat mark overwrites the previous status.
func (s *TeacherService) MarkAttendance(ctx context.Context, teacherID string, req TeacherAttendanceRequest) (*models.TeacherDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid attendance status")
	}

	record := &models.TeacherAttendance{
		TeacherID: teacherID,
		Date:      req.Date,
		Status:    req.Status,
	}
	if _, err := s.attendance.UpsertTeacher(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record attendance")
	}
	return s.Get(ctx, teacherID)
}

func (s *TeacherService) attachAttendance(ctx context.Context, teacher *models.TeacherDetail) (*models.TeacherDetail, error) {
	attendance, err := s.attendance.ListByTeacher(ctx, teacher.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance")
	}
	teacher.Attendance = attendance
	return sanitizeTeacher(teacher), nil
}

func sanitizeTeacher(teacher *models.TeacherDetail) *models.TeacherDetail {
	teacher.TeacherImage = storage.NormalizePath(teacher.TeacherImage)
	teacher.SchoolLogo = storage.NormalizePath(teacher.SchoolLogo)
	return teacher
}
