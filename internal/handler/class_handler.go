package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/response"
)

// ClassHandler exposes the class endpoints.
type ClassHandler struct {
	classes *service.ClassService
}

// NewClassHandler constructs ClassHandler.
func NewClassHandler(classes *service.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// Create godoc
// @Summary Create a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 201 {object} models.Class
// @Router /SclassCreate [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	class, err := h.classes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// ListBySchool godoc
// @Summary List a school's classes
// @Tags Classes
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {array} models.Class
// @Router /SclassList/{id} [get]
func (h *ClassHandler) ListBySchool(c *gin.Context) {
	classes, err := h.classes.ListBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(classes) == 0 {
		response.Message(c, http.StatusOK, "No sclasses found")
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Get godoc
// @Summary Get a class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} models.ClassDetail
// @Router /Sclass/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.classes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// ListStudents godoc
// @Summary List a class's students
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {array} models.StudentDetail
// @Router /Sclass/Students/{id} [get]
func (h *ClassHandler) ListStudents(c *gin.Context) {
	students, err := h.classes.ListStudents(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(students) == 0 {
		response.Message(c, http.StatusOK, "No students found")
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Delete godoc
// @Summary Delete a class and everything in it
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} service.ClassDeleteSummary
// @Router /Sclass/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	summary, err := h.classes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// DeleteBySchool godoc
// @Summary Delete all of a school's classes and their contents
// @Tags Classes
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} service.ClassDeleteSummary
// @Router /Sclasses/{id} [delete]
func (h *ClassHandler) DeleteBySchool(c *gin.Context) {
	summary, err := h.classes.DeleteBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if summary.Classes == 0 {
		response.Message(c, http.StatusOK, "No classes found to delete")
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
