package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fastfoodbot/internal/config"
	"fastfoodbot/internal/database"
	"fastfoodbot/internal/models"
	"fastfoodbot/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key-123"

func testConfig() config.APIConfig {
	return config.APIConfig{
		Enabled: true,
		Port:    0,
		Auth: config.APIAuthConfig{
			Enabled:      true,
			HeaderAPIKey: "x-api-key",
			APIKeys: []config.APIClientKey{
				{Key: testAPIKey, Name: "admin"},
				{Key: "reader-key", Name: "reader", Permissions: []string{"read"}},
			},
		},
		RateLimit: config.APIRateLimitConfig{RPS: 100, Burst: 100},
	}
}

func setupServer(t *testing.T) (*Server, *database.DB) {
	t.Helper()

	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	catalog := service.NewCatalogService(db, &logger)
	return NewServer(testConfig(), db, catalog, t.TempDir(), &logger), db
}

func doRequest(t *testing.T, srv *Server, method, path, apiKey string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/categories", "wrong-key", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/categories", testAPIKey, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadOnlyKeyCannotWrite(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/categories", "reader-key", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/categories", "reader-key",
		map[string]any{"name_uz": "Lavashlar", "name_ru": "Лаваши"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.APIRateLimitConfig{RPS: 1, Burst: 2}

	logger := zerolog.New(io.Discard)
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	defer db.Close()

	catalog := service.NewCatalogService(db, &logger)
	srv := NewServer(cfg, db, catalog, t.TempDir(), &logger)

	var last int
	for i := 0; i < 5; i++ {
		rec := doRequest(t, srv, http.MethodGet, "/api/v1/categories", testAPIKey, nil)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestCategoryCRUD(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/categories", testAPIKey,
		map[string]any{"name_uz": "Lavashlar", "name_ru": "Лаваши", "is_active": true, "sort_order": 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)

	rec = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/categories/%d", created.ID), testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodPut, fmt.Sprintf("/api/v1/categories/%d", created.ID), testAPIKey,
		map[string]any{"name_uz": "Burgerlar", "name_ru": "Бургеры", "is_active": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", created.ID), testAPIKey, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, fmt.Sprintf("/api/v1/categories/%d", created.ID), testAPIKey, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductValidation(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/products", testAPIKey,
		map[string]any{"name_uz": "Lavash"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderStatusUpdate(t *testing.T) {
	srv, db := setupServer(t)
	ctx := context.Background()

	order := &models.Order{
		UserID: 100, Phone: "998901234567", Address: "Chilonzor",
		Status: models.StatusNew, TotalPrice: 25000,
		Items: []models.OrderItem{{ProductID: 1, NameUz: "Lavash", NameRu: "Лаваш", Price: 25000, Quantity: 1}},
	}
	require.NoError(t, db.CreateOrder(ctx, order))

	rec := doRequest(t, srv, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d/status", order.ID), testAPIKey,
		map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	rec = doRequest(t, srv, http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d/status", order.ID), testAPIKey,
		map[string]any{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserEndpoints(t *testing.T) {
	srv, db := setupServer(t)
	ctx := context.Background()

	require.NoError(t, db.CreateOrUpdateUser(ctx, &models.User{TelegramID: 111, Username: "ali", LanguageCode: models.LangUz}))
	require.NoError(t, db.CreateOrUpdateUser(ctx, &models.User{TelegramID: 222, Username: "vali", LanguageCode: models.LangRu}))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/users", testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Users []models.User `json:"users"`
		Total int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, int64(2), list.Total)
	assert.Len(t, list.Users, 2)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/users/111", testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "ali", user.Username)

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/users/999", testAPIKey, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardStats(t *testing.T) {
	srv, db := setupServer(t)
	ctx := context.Background()

	require.NoError(t, db.CreateOrUpdateUser(ctx, &models.User{TelegramID: 1, Username: "u1"}))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/stats/dashboard", testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Stats database.DashboardStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Stats.TotalUsers)
}

func TestExportOrders(t *testing.T) {
	srv, db := setupServer(t)
	ctx := context.Background()

	order := &models.Order{
		UserID: 100, Phone: "998901234567", Address: "Chilonzor",
		Status: models.StatusNew, TotalPrice: 58000, CreatedAt: time.Now(),
		Items: []models.OrderItem{{ProductID: 1, NameUz: "Lavash", NameRu: "Лаваш", Price: 29000, Quantity: 2}},
	}
	require.NoError(t, db.CreateOrder(ctx, order))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/export/orders.xlsx", testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Greater(t, rec.Body.Len(), 0)
}
