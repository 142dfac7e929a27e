package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/response"
	"github.com/noah-isme/school-mgmt-api/pkg/storage"
)

// AdminHandler exposes the school account endpoints.
type AdminHandler struct {
	admins  *service.AdminService
	uploads *storage.UploadStore
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(admins *service.AdminService, uploads *storage.UploadStore) *AdminHandler {
	return &AdminHandler{admins: admins, uploads: uploads}
}

// Register godoc
// @Summary Register a school account
// @Tags Admin
// @Accept json
// @Accept mpfd
// @Produce json
// @Param payload body service.RegisterAdminRequest true "Admin payload"
// @Success 201 {object} models.Admin
// @Router /AdminReg [post]
func (h *AdminHandler) Register(c *gin.Context) {
	var req service.RegisterAdminRequest
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
		var err error
		if req.SchoolBanner, err = saveOptionalFile(c, h.uploads, "schoolBanner"); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store school banner"))
			return
		}
		if req.SchoolLogo, err = saveOptionalFile(c, h.uploads, "schoolLogo"); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store school logo"))
			return
		}
		if req.ProfilePic, err = saveOptionalFile(c, h.uploads, "profilePic"); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store profile picture"))
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	admin, err := h.admins.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, admin)
}

// Login godoc
// @Summary Authenticate a school account
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.LoginAdminRequest true "Credentials"
// @Success 200 {object} models.Admin
// @Router /AdminLogin [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req service.LoginAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	admin, err := h.admins.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admin)
}

// Get godoc
// @Summary Get a school account
// @Tags Admin
// @Produce json
// @Param id path string true "Admin ID"
// @Success 200 {object} models.Admin
// @Router /Admin/{id} [get]
func (h *AdminHandler) Get(c *gin.Context) {
	admin, err := h.admins.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admin)
}

// Update godoc
// @Summary Update a school account
// @Tags Admin
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path string true "Admin ID"
// @Param payload body service.UpdateAdminRequest true "Fields to update"
// @Success 200 {object} models.Admin
// @Router /AdminUpdate/{id} [put]
func (h *AdminHandler) Update(c *gin.Context) {
	var req service.UpdateAdminRequest
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
		var err error
		if req.SchoolBanner, err = saveOptionalFile(c, h.uploads, "schoolBanner"); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store school banner"))
			return
		}
		if req.SchoolLogo, err = saveOptionalFile(c, h.uploads, "schoolLogo"); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store school logo"))
			return
		}
		if req.ProfilePic, err = saveOptionalFile(c, h.uploads, "profilePic"); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store profile picture"))
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	admin, err := h.admins.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, admin)
}
