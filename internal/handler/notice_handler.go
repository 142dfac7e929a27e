package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-mgmt-api/internal/service"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
	"github.com/noah-isme/school-mgmt-api/pkg/response"
)

// NoticeHandler exposes the notice endpoints.
type NoticeHandler struct {
	notices *service.NoticeService
}

// NewNoticeHandler constructs NoticeHandler.
func NewNoticeHandler(notices *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// Create godoc
// @Summary Post a notice
// @Tags Notices
// @Accept json
// @Produce json
// @Param payload body service.CreateNoticeRequest true "Notice payload"
// @Success 201 {object} models.Notice
// @Router /NoticeCreate [post]
func (h *NoticeHandler) Create(c *gin.Context) {
	var req service.CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	notice, err := h.notices.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notice)
}

// ListBySchool godoc
// @Summary List a school's notices
// @Tags Notices
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {array} models.Notice
// @Router /NoticeList/{id} [get]
func (h *NoticeHandler) ListBySchool(c *gin.Context) {
	notices, err := h.notices.ListBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if len(notices) == 0 {
		response.Message(c, http.StatusOK, "No notices found")
		return
	}
	response.JSON(c, http.StatusOK, notices)
}

// Update godoc
// @Summary Update a notice
// @Tags Notices
// @Accept json
// @Produce json
// @Param id path string true "Notice ID"
// @Param payload body service.UpdateNoticeRequest true "Fields to update"
// @Success 200 {object} models.Notice
// @Router /Notice/{id} [put]
func (h *NoticeHandler) Update(c *gin.Context) {
	var req service.UpdateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	notice, err := h.notices.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice)
}

// Delete godoc
// @Summary Delete a notice
// @Tags Notices
// @Produce json
// @Param id path string true "Notice ID"
// @Success 200 {object} models.Notice
// @Router /Notice/{id} [delete]
func (h *NoticeHandler) Delete(c *gin.Context) {
	notice, err := h.notices.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice)
}

// DeleteBySchool godoc
// @Summary Delete all of a school's notices
// @Tags Notices
// @Produce json
// @Param id path string true "School ID"
// @Success 200 {object} map[string]int64
// @Router /Notices/{id} [delete]
func (h *NoticeHandler) DeleteBySchool(c *gin.Context) {
	count, err := h.notices.DeleteBySchool(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if count == 0 {
		response.Message(c, http.StatusOK, "No notices found to delete")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"deletedCount": count})
}
