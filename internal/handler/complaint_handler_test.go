package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	"github.com/noah-isme/school-mgmt-api/internal/service"
)

type complaintRepoMock struct {
	complaints []models.Complaint
}

func (m *complaintRepoMock) Create(ctx context.Context, complaint *models.Complaint) error {
	complaint.ID = uuid.NewString()
	complaint.CreatedAt = time.Now()
	m.complaints = append(m.complaints, *complaint)
	return nil
}

func (m *complaintRepoMock) ListBySchool(ctx context.Context, schoolID string) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range m.complaints {
		if c.SchoolID == schoolID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newComplaintHandler(repo *complaintRepoMock) *ComplaintHandler {
	return NewComplaintHandler(service.NewComplaintService(repo, nil, nil))
}

func TestComplaintHandlerCreateValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newComplaintHandler(&complaintRepoMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/ComplainCreate", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComplaintHandlerCreateAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &complaintRepoMock{}
	handler := newComplaintHandler(repo)

	body, _ := json.Marshal(gin.H{
		"user":      "student-1",
		"complaint": "The library is closed during lunch.",
		"date":      time.Now().UTC().Format(time.RFC3339),
		"school":    "school-1",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/ComplainCreate", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.complaints, 1)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/ComplainList/school-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "school-1"}}

	handler.ListBySchool(c)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []models.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, "student-1", listed[0].UserID)
}

func TestComplaintHandlerListEmptyMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newComplaintHandler(&complaintRepoMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/ComplainList/school-9", nil)
	c.Params = gin.Params{{Key: "id", Value: "school-9"}}

	handler.ListBySchool(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"No complains found"}`, w.Body.String())
}
