package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/storage"
)

type adminRepository interface {
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	ExistsBySchoolName(ctx context.Context, schoolName, excludeID string) (bool, error)
	Create(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, admin *models.Admin) error
}

type credentialHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hashedSecret string) bool
}

// RegisterAdminRequest captures the school registration payload. Image paths
// are filled in by the handler after the uploads are stored.
type RegisterAdminRequest struct {
	Name          string `json:"name" validate:"required" form:"name"`
	Email         string `json:"email" validate:"required,email" form:"email"`
	Password      string `json:"password" validate:"required" form:"password"`
	SchoolName    string `json:"schoolName" validate:"required" form:"schoolName"`
	Phone         string `json:"phone" form:"phone"`
	Address       string `json:"address" form:"address"`
	Qualification string `json:"qualification" form:"qualification"`
	Bio           string `json:"bio" form:"bio"`
	SchoolBanner  string `json:"-"`
	SchoolLogo    string `json:"-"`
	ProfilePic    string `json:"-"`
}

// LoginAdminRequest identifies an admin by email.
type LoginAdminRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateAdminRequest carries a partial admin update. Nil fields are left
// untouched; an empty password means "keep the current one".
type UpdateAdminRequest struct {
	Name          *string `json:"name" form:"name"`
	Email         *string `json:"email" form:"email"`
	SchoolName    *string `json:"schoolName" form:"schoolName"`
	Phone         *string `json:"phone" form:"phone"`
	Address       *string `json:"address" form:"address"`
	Qualification *string `json:"qualification" form:"qualification"`
	Bio           *string `json:"bio" form:"bio"`
	Password      string  `json:"password" form:"password"`
	SchoolBanner  string  `json:"-"`
	SchoolLogo    string  `json:"-"`
	ProfilePic    string  `json:"-"`
}

// AdminService handles school account workflows.
type AdminService struct {
	repo      adminRepository
	hasher    credentialHasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(repo adminRepository, hasher credentialHasher, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{repo: repo, hasher: hasher, validator: validate, logger: logger}
}

// Register creates a school account after checking both global uniqueness
// constraints. Conflicts are recoverable outcomes, not failures.
func (s *AdminService) Register(ctx context.Context, req RegisterAdminRequest) (*models.Admin, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admin payload")
	}

	emailTaken, err := s.repo.ExistsByEmail(ctx, req.Email, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check admin email")
	}
	if emailTaken {
		return nil, appErrors.ErrEmailExists
	}

	schoolTaken, err := s.repo.ExistsBySchoolName(ctx, req.SchoolName, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check school name")
	}
	if schoolTaken {
		return nil, appErrors.ErrSchoolNameExists
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	admin := &models.Admin{
		Name:          req.Name,
		Email:         req.Email,
		Password:      hashed,
		Role:          "Admin",
		SchoolName:    req.SchoolName,
		Phone:         req.Phone,
		Address:       req.Address,
		Qualification: req.Qualification,
		Bio:           req.Bio,
		SchoolBanner:  req.SchoolBanner,
		SchoolLogo:    req.SchoolLogo,
		ProfilePic:    req.ProfilePic,
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin")
	}

	s.logger.Info("admin registered", zap.String("admin_id", admin.ID), zap.String("school", admin.SchoolName))
	return sanitizeAdmin(admin), nil
}

// Login authenticates an admin by email. Both failure modes are reported as
// message outcomes, never as 4xx/5xx.
func (s *AdminService) Login(ctx context.Context, req LoginAdminRequest) (*models.Admin, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Email and password are required")
	}

	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
	}

	if !s.hasher.Verify(req.Password, admin.Password) {
		return nil, appErrors.ErrInvalidPassword
	}

	return sanitizeAdmin(admin), nil
}

// Get returns an admin by ID.
func (s *AdminService) Get(ctx context.Context, id string) (*models.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "No admin found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin")
	}
	return sanitizeAdmin(admin), nil
}

// Update applies a partial admin update, re-hashing when a new password is
// present and overwriting image paths when new uploads arrived.
func (s *AdminService) Update(ctx context.Context, id string, req UpdateAdminRequest) (*models.Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUserNotFound, "Admin not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin")
	}

	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Email != nil {
		admin.Email = *req.Email
	}
	if req.SchoolName != nil {
		admin.SchoolName = *req.SchoolName
	}
	if req.Phone != nil {
		admin.Phone = *req.Phone
	}
	if req.Address != nil {
		admin.Address = *req.Address
	}
	if req.Qualification != nil {
		admin.Qualification = *req.Qualification
	}
	if req.Bio != nil {
		admin.Bio = *req.Bio
	}
	if req.Password != "" {
		hashed, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		admin.Password = hashed
	}
	if req.SchoolBanner != "" {
		admin.SchoolBanner = req.SchoolBanner
	}
	if req.SchoolLogo != "" {
		admin.SchoolLogo = req.SchoolLogo
	}
	if req.ProfilePic != "" {
		admin.ProfilePic = req.ProfilePic
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update admin")
	}
	return sanitizeAdmin(admin), nil
}

// sanitizeAdmin normalises stored image paths for the response. The password
// never serializes; its struct tag hides it.
func sanitizeAdmin(admin *models.Admin) *models.Admin {
	admin.SchoolBanner = storage.NormalizePath(admin.SchoolBanner)
	admin.SchoolLogo = storage.NormalizePath(admin.SchoolLogo)
	admin.ProfilePic = storage.NormalizePath(admin.ProfilePic)
	return admin
}
