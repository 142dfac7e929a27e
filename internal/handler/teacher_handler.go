package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/response"
	"github.com/noah-isme/school-mgmt-api/pkg/storage"
)

// TeacherHandler exposes the teaching-staff endpoints.
type TeacherHandler struct {
	teachers *service.TeacherService
	uploads  *storage.UploadStore
}

// NewTeacherHandler constructs TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService, uploads *storage.UploadStore) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, uploads: uploads}
}

// Register godoc
// @Summary Register a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.RegisterTeacherRequest true "Teacher payload"
// @Success 201 {object} models.TeacherDetail
// @Router /TeacherReg [post]
func (h *TeacherHandler) Register(c *gin.Context) {
	var req service.RegisterTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	teacher, err := h.teachers.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// Login godoc
// @Summary Authenticate a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.LoginTeacherRequest true "Credentials"
// @Success 200 {object} models.TeacherDetail
// @Router /TeacherLogin [post]
func (h *TeacherHandler) Login(c *gin.Context) {
	var req service.LoginTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	teacher, err := h.teachers.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// ListBySchool godoc
// @Summary List a school's teachers
// @Tags Teachers
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {array} models.TeacherDetail
// @Router /Teachers/{id} [get]
func (h *TeacherHandler) ListBySchool(c *gin.Context) {
	teachers, err := h.teachers.ListBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(teachers) == 0 {
		response.Message(c, http.StatusOK, "No teachers found")
		return
	}
	response.JSON(c, http.StatusOK, teachers)
}

// Get godoc
// @Summary Get a teacher
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} models.TeacherDetail
// @Router /Teacher/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	teacher, err := h.teachers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// Update godoc
// @Summary Update a teacher
// @Tags Teachers
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body service.UpdateTeacherRequest true "Fields to update"
// @Success 200 {object} models.TeacherDetail
// @Router /TeacherUpdate/{id} [put]
func (h *TeacherHandler) Update(c *gin.Context) {
	var req service.UpdateTeacherRequest
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
		var err error
		if req.TeacherImage, err = saveOptionalFile(c, h.uploads, "teacherImage"); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store teacher image"))
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	teacher, err := h.teachers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// AssignSubject godoc
// @Summary Assign a subject to a teacher
// @Tags Teachers
// @Accept json
// @Produce json
// @Param payload body service.AssignSubjectRequest true "Assignment"
// @Success 200 {object} models.TeacherDetail
// @Router /TeacherSubject [put]
func (h *TeacherHandler) AssignSubject(c *gin.Context) {
	var req service.AssignSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	teacher, err := h.teachers.AssignSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// Delete godoc
// @Summary Delete a teacher
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} models.TeacherDetail
// @Router /Teacher/{id} [delete]
func (h *TeacherHandler) Delete(c *gin.Context) {
	teacher, err := h.teachers.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// DeleteBySchool godoc
// @Summary Delete all of a school's teachers
// @Tags Teachers
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} map[string]int64
// @Router /Teachers/{id} [delete]
func (h *TeacherHandler) DeleteBySchool(c *gin.Context) {
	count, err := h.teachers.DeleteBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if count == 0 {
		response.Message(c, http.StatusOK, "No teachers found to delete")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deletedCount": count})
}

// DeleteByClass godoc
// @Summary Delete all of a class's teachers
// @Tags Teachers
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} map[string]int64
// @Router /TeachersClass/{id} [delete]
func (h *TeacherHandler) DeleteByClass(c *gin.Context) {
	count, err := h.teachers.DeleteByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if count == 0 {
		response.Message(c, http.StatusOK, "No teachers found to delete")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deletedCount": count})
}

// MarkAttendance godoc
// @Summary Record a teacher's attendance for a day
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body service.TeacherAttendanceRequest true "Attendance mark"
// @Success 200 {object} models.TeacherDetail
// @Router /TeacherAttendance/{id} [post]
func (h *TeacherHandler) MarkAttendance(c *gin.Context) {
	var req service.TeacherAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	teacher, err := h.teachers.MarkAttendance(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}
