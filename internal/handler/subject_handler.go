package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/response"
)

// SubjectHandler exposes the subject endpoints.
type SubjectHandler struct {
	subjects *service.SubjectService
}

// NewSubjectHandler constructs SubjectHandler.
func NewSubjectHandler(subjects *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

// Create godoc
// @Summary Add subjects to a class
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body service.CreateSubjectsRequest true "Subjects payload"
// @Success 201 {array} models.Subject
// @Router /SubjectCreate [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.CreateSubjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subjects, err := h.subjects.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subjects)
}

// ListBySchool godoc
// @Summary List a school's subjects
// @Tags Subjects
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {array} models.SubjectDetail
// @Router /AllSubjects/{id} [get]
func (h *SubjectHandler) ListBySchool(c *gin.Context) {
	subjects, err := h.subjects.ListBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(subjects) == 0 {
		response.Message(c, http.StatusOK, "No subjects found")
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}

// ListByClass godoc
// @Summary List a class's subjects
// @Tags Subjects
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {array} models.SubjectDetail
// @Router /ClassSubjects/{id} [get]
func (h *SubjectHandler) ListByClass(c *gin.Context) {
	subjects, err := h.subjects.ListByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(subjects) == 0 {
		response.Message(c, http.StatusOK, "No subjects found")
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}

// ListFreeByClass godoc
// @Summary List a class's unassigned subjects
// @Tags Subjects
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {array} models.SubjectDetail
// @Router /FreeSubjectList/{id} [get]
func (h *SubjectHandler) ListFreeByClass(c *gin.Context) {
	subjects, err := h.subjects.ListFreeByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(subjects) == 0 {
		response.Message(c, http.StatusOK, "No subjects found")
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}

// Get godoc
// @Summary Get a subject
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} models.SubjectDetail
// @Router /Subject/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	subject, err := h.subjects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject)
}

// Delete godoc
// @Summary Delete a subject
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} models.SubjectDetail
// @Router /Subject/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	subject, err := h.subjects.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subject)
}

// DeleteBySchool godoc
// @Summary Delete all of a school's subjects
// @Tags Subjects
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} map[string]int64
// @Router /Subjects/{id} [delete]
func (h *SubjectHandler) DeleteBySchool(c *gin.Context) {
	count, err := h.subjects.DeleteBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if count == 0 {
		response.Message(c, http.StatusOK, "No subjects found to delete")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deletedCount": count})
}

// DeleteByClass godoc
// @Summary Delete all of a class's subjects
// @Tags Subjects
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} map[string]int64
// @Router /SubjectsClass/{id} [delete]
func (h *SubjectHandler) DeleteByClass(c *gin.Context) {
	count, err := h.subjects.DeleteByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if count == 0 {
		response.Message(c, http.StatusOK, "No subjects found to delete")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deletedCount": count})
}
