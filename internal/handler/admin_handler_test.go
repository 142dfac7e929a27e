package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	"github.com/noah-isme/school-mgmt-api/internal/service"
)

type adminRepoMock struct {
	admins map[string]*models.Admin
}

func newAdminRepoMock() *adminRepoMock {
	return &adminRepoMock{admins: map[string]*models.Admin{}}
}

func (m *adminRepoMock) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	admin, ok := m.admins[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *admin
	return &copied, nil
}

func (m *adminRepoMock) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	for _, admin := range m.admins {
		if admin.Email == email {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *adminRepoMock) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	for _, admin := range m.admins {
		if admin.Email == email && admin.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *adminRepoMock) ExistsBySchoolName(ctx context.Context, schoolName, excludeID string) (bool, error) {
	for _, admin := range m.admins {
		if admin.SchoolName == schoolName && admin.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *adminRepoMock) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = uuid.NewString()
	copied := *admin
	m.admins[admin.ID] = &copied
	return nil
}

func (m *adminRepoMock) Update(ctx context.Context, admin *models.Admin) error {
	copied := *admin
	m.admins[admin.ID] = &copied
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(secret string) (string, error) { return "hashed:" + secret, nil }

func (plainHasher) Verify(secret, hashedSecret string) bool {
	return "hashed:"+secret == hashedSecret
}

func newAdminHandler(repo *adminRepoMock) *AdminHandler {
	return NewAdminHandler(service.NewAdminService(repo, plainHasher{}, nil, nil), nil)
}

func postJSON(t *testing.T, handle gin.HandlerFunc, target string, payload gin.H) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handle(c)
	return w
}

func TestAdminHandlerRegisterDuplicateEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newAdminRepoMock()
	handler := newAdminHandler(repo)

	payload := gin.H{
		"name":       "Head Admin",
		"email":      "head@one.test",
		"password":   "secret",
		"schoolName": "First School",
	}
	w := postJSON(t, handler.Register, "/AdminReg", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	payload["schoolName"] = "Second School"
	w = postJSON(t, handler.Register, "/AdminReg", payload)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Email already exists"}`, w.Body.String())
}

func TestAdminHandlerRegisterDuplicateSchoolName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newAdminRepoMock()
	handler := newAdminHandler(repo)

	w := postJSON(t, handler.Register, "/AdminReg", gin.H{
		"name":       "Head Admin",
		"email":      "head@one.test",
		"password":   "secret",
		"schoolName": "First School",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Register, "/AdminReg", gin.H{
		"name":       "Other Admin",
		"email":      "head@two.test",
		"password":   "secret",
		"schoolName": "First School",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"School name already exists"}`, w.Body.String())
}

func TestAdminHandlerLoginOutcomes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := newAdminRepoMock()
	handler := newAdminHandler(repo)

	w := postJSON(t, handler.Register, "/AdminReg", gin.H{
		"name":       "Head Admin",
		"email":      "head@one.test",
		"password":   "secret",
		"schoolName": "First School",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Login, "/AdminLogin", gin.H{"email": "head@one.test", "password": "wrong"})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Invalid password"}`, w.Body.String())

	w = postJSON(t, handler.Login, "/AdminLogin", gin.H{"email": "nobody@one.test", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"User not found"}`, w.Body.String())

	w = postJSON(t, handler.Login, "/AdminLogin", gin.H{"email": "head@one.test", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	var admin models.Admin
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &admin))
	require.Equal(t, "First School", admin.SchoolName)
	require.NotContains(t, w.Body.String(), "password")
}
