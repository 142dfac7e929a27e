package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/response"
	"github.com/noah-isme/school-mgmt-api/pkg/storage"
)

// StudentHandler exposes the student endpoints.
type StudentHandler struct {
	students *service.StudentService
	uploads  *storage.UploadStore
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, uploads *storage.UploadStore) *StudentHandler {
	return &StudentHandler{students: students, uploads: uploads}
}

// Register godoc
// @Summary Enrol a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.RegisterStudentRequest true "Student payload"
// @Success 201 {object} models.StudentDetail
// @Router /StudentReg [post]
func (h *StudentHandler) Register(c *gin.Context) {
	var req service.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Login godoc
// @Summary Authenticate a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.LoginStudentRequest true "Credentials"
// @Success 200 {object} models.StudentDetail
// @Router /StudentLogin [post]
func (h *StudentHandler) Login(c *gin.Context) {
	var req service.LoginStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// ListBySchool godoc
// @Summary List a school's students
// @Tags Students
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {array} models.StudentDetail
// @Failure 404 {object} map[string]string
// @Router /Students/{id} [get]
func (h *StudentHandler) ListBySchool(c *gin.Context) {
	students, err := h.students.ListBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(students) == 0 {
		response.Message(c, http.StatusNotFound, "No students found")
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// Get godoc
// @Summary Get a student with records
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} models.StudentDetail
// @Router /Student/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Update godoc
// @Summary Update a student
// @Tags Students
// @Accept json
// @Accept mpfd
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} models.StudentDetail
// @Router /Student/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if isMultipart(c) {
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
		var err error
		if req.StudentImage, err = saveOptionalFile(c, h.uploads, "studentImage"); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to store student image"))
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// Delete godoc
// @Summary Delete a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} models.StudentDetail
// @Router /Student/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	student, err := h.students.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// DeleteBySchool godoc
// @Summary Delete all of a school's students
// @Tags Students
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} map[string]int64
// @Router /Students/{id} [delete]
func (h *StudentHandler) DeleteBySchool(c *gin.Context) {
	count, err := h.students.DeleteBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if count == 0 {
		response.Message(c, http.StatusOK, "No students found to delete")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deletedCount": count})
}

// DeleteByClass godoc
// @Summary Delete all of a class's students
// @Tags Students
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} map[string]int64
// @Router /StudentsClass/{id} [delete]
func (h *StudentHandler) DeleteByClass(c *gin.Context) {
	count, err := h.students.DeleteByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if count == 0 {
		response.Message(c, http.StatusOK, "No students found to delete")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deletedCount": count})
}

// MarkAttendance godoc
// @Summary Record a day's attendance for a subject
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.StudentAttendanceRequest true "Attendance mark"
// @Success 200 {object} models.StudentDetail
// @Router /StudentAttendance/{id} [put]
func (h *StudentHandler) MarkAttendance(c *gin.Context) {
	var req service.StudentAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.MarkAttendance(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// UpdateExamResult godoc
// @Summary Record a subject's exam marks
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.ExamResultRequest true "Exam result"
// @Success 200 {object} models.StudentDetail
// @Router /UpdateExamResult/{id} [put]
func (h *StudentHandler) UpdateExamResult(c *gin.Context) {
	var req service.ExamResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.UpsertExamResult(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student)
}

// ClearSubjectAttendance godoc
// @Summary Clear every student's marks for a subject
// @Tags Students
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} map[string]int64
// @Router /RemoveAllStudentsSubAtten/{id} [put]
func (h *StudentHandler) ClearSubjectAttendance(c *gin.Context) {
	count, err := h.students.ClearAttendanceBySubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"modifiedCount": count})
}

// ClearSchoolAttendance godoc
// @Summary Clear every attendance mark in a school
// @Tags Students
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} map[string]int64
// @Router /RemoveAllStudentsAtten/{id} [put]
func (h *StudentHandler) ClearSchoolAttendance(c *gin.Context) {
	count, err := h.students.ClearAttendanceBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"modifiedCount": count})
}

// ClearStudentSubjectAttendance godoc
// @Summary Clear one student's marks for a subject
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} map[string]int64
// @Router /RemoveStudentSubAtten/{id} [put]
func (h *StudentHandler) ClearStudentSubjectAttendance(c *gin.Context) {
	var req struct {
		SubjectID string `json:"subId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	count, err := h.students.ClearStudentSubjectAttendance(c.Request.Context(), c.Param("id"), req.SubjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"modifiedCount": count})
}

// ClearStudentAttendance godoc
// @Summary Clear every mark for one student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} map[string]int64
// @Router /RemoveStudentAtten/{id} [put]
func (h *StudentHandler) ClearStudentAttendance(c *gin.Context) {
	count, err := h.students.ClearStudentAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"modifiedCount": count})
}
