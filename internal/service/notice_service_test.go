package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/school-mgmt-api/internal/models"
	appErrors "github.com/noah-isme/school-mgmt-api/pkg/errors"
)

type mockNoticeRepo struct {
	notices map[string]models.Notice
	lists   int
}

func newMockNoticeRepo() *mockNoticeRepo {
	return &mockNoticeRepo{notices: make(map[string]models.Notice)}
}

func (m *mockNoticeRepo) FindByID(ctx context.Context, id string) (*models.Notice, error) {
	if n, ok := m.notices[id]; ok {
		return &n, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockNoticeRepo) ListBySchool(ctx context.Context, schoolID string) ([]models.Notice, error) {
	m.lists++
	var out []models.Notice
	for _, n := range m.notices {
		if n.SchoolID == schoolID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNoticeRepo) Create(ctx context.Context, notice *models.Notice) error {
	if notice.ID == "" {
		notice.ID = "generated"
	}
	m.notices[notice.ID] = *notice
	return nil
}

func (m *mockNoticeRepo) Update(ctx context.Context, notice *models.Notice) error {
	m.notices[notice.ID] = *notice
	return nil
}

func (m *mockNoticeRepo) Delete(ctx context.Context, id string) (int64, error) {
	if _, ok := m.notices[id]; !ok {
		return 0, nil
	}
	delete(m.notices, id)
	return 1, nil
}

func (m *mockNoticeRepo) DeleteBySchool(ctx context.Context, schoolID string) (int64, error) {
	var n int64
	for id, notice := range m.notices {
		if notice.SchoolID == schoolID {
			delete(m.notices, id)
			n++
		}
	}
	return n, nil
}

// memoryCacheRepo stands in for the Redis-backed cache repository.
type memoryCacheRepo struct {
	entries map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	for key := range m.entries {
		if key == pattern {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestNoticeServiceCreateAndList(t *testing.T) {
	repo := newMockNoticeRepo()
	svc := NewNoticeService(repo, nil, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateNoticeRequest{
		Title:    "Sports Day",
		Details:  "Annual sports day next Friday",
		Date:     time.Now(),
		SchoolID: "school-1",
	})
	require.NoError(t, err)

	notices, err := svc.ListBySchool(context.Background(), "school-1")
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "Sports Day", notices[0].Title)
}

func TestNoticeServiceListReadsThroughCache(t *testing.T) {
	repo := newMockNoticeRepo()
	repo.notices["n1"] = models.Notice{ID: "n1", Title: "Sports Day", SchoolID: "school-1"}
	cache := NewCacheService(newMemoryCacheRepo(), time.Minute, nil, zap.NewNop())
	svc := NewNoticeService(repo, cache, validator.New(), zap.NewNop())

	_, err := svc.ListBySchool(context.Background(), "school-1")
	require.NoError(t, err)
	_, err = svc.ListBySchool(context.Background(), "school-1")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists)
}

func TestNoticeServiceCreateInvalidatesCache(t *testing.T) {
	repo := newMockNoticeRepo()
	repo.notices["n1"] = models.Notice{ID: "n1", Title: "Old", SchoolID: "school-1"}
	cache := NewCacheService(newMemoryCacheRepo(), time.Minute, nil, zap.NewNop())
	svc := NewNoticeService(repo, cache, validator.New(), zap.NewNop())

	_, err := svc.ListBySchool(context.Background(), "school-1")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateNoticeRequest{
		Title: "New", Details: "Fresh", Date: time.Now(), SchoolID: "school-1",
	})
	require.NoError(t, err)

	notices, err := svc.ListBySchool(context.Background(), "school-1")
	require.NoError(t, err)
	assert.Len(t, notices, 2)
	assert.Equal(t, 2, repo.lists)
}

func TestNoticeServiceUpdatePartial(t *testing.T) {
	repo := newMockNoticeRepo()
	repo.notices["n1"] = models.Notice{ID: "n1", Title: "Old", Details: "Keep", SchoolID: "school-1"}
	svc := NewNoticeService(repo, nil, validator.New(), zap.NewNop())

	title := "Updated"
	notice, err := svc.Update(context.Background(), "n1", UpdateNoticeRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Updated", notice.Title)
	assert.Equal(t, "Keep", notice.Details)
}

func TestNoticeServiceDeleteNotFound(t *testing.T) {
	svc := NewNoticeService(newMockNoticeRepo(), nil, validator.New(), zap.NewNop())

	_, err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Notice not found", appErrors.FromError(err).Message)
}
