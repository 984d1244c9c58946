package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tralli/internal/schema"
	"tralli/pkg/utils"
)

type stubIngestService struct {
	count       int
	err         error
	gotOp       string
	gotCity     string
	gotCategory schema.Category
	gotRecords  []map[string]any
}

func (s *stubIngestService) Ingest(_ context.Context, city string, category schema.Category, records []map[string]any) (int, error) {
	s.gotOp = "ingest"
	s.gotCity = city
	s.gotCategory = category
	s.gotRecords = records
	return s.count, s.err
}

func (s *stubIngestService) Append(_ context.Context, city string, category schema.Category, records []map[string]any) (int, error) {
	s.gotOp = "append"
	s.gotCity = city
	s.gotCategory = category
	s.gotRecords = records
	return s.count, s.err
}

func adminRouter(svc *stubIngestService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewAdminController(svc)
	router := gin.New()
	router.POST("/admin/login", ctrl.Login)
	router.POST("/admin/ingest", ctrl.Ingest)
	router.POST("/admin/upsert", ctrl.Upsert)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginWithoutConfiguredPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	router := adminRouter(&stubIngestService{})

	w := postJSON(router, "/admin/login", `{"password":"whatever"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("right")
	require.NoError(t, err)
	t.Setenv("ADMIN_PASSWORD_HASH", hash)
	router := adminRouter(&stubIngestService{})

	w := postJSON(router, "/admin/login", `{"password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginIssuesToken(t *testing.T) {
	hash, err := utils.HashPassword("right")
	require.NoError(t, err)
	t.Setenv("ADMIN_PASSWORD_HASH", hash)
	t.Setenv("JWT_SECRET", "test-signing-key")
	router := adminRouter(&stubIngestService{})

	w := postJSON(router, "/admin/login", `{"password":"right"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
}

func TestLoginWithoutSigningSecret(t *testing.T) {
	hash, err := utils.HashPassword("right")
	require.NoError(t, err)
	t.Setenv("ADMIN_PASSWORD_HASH", hash)
	t.Setenv("JWT_SECRET", "")
	router := adminRouter(&stubIngestService{})

	w := postJSON(router, "/admin/login", `{"password":"right"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestIngestRoutesToService(t *testing.T) {
	svc := &stubIngestService{count: 2}
	router := adminRouter(svc)

	w := postJSON(router, "/admin/ingest", `{"city":"varanasi","category":"food","records":[{"foodPlace":"a"},{"foodPlace":"b"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ingest", svc.gotOp)
	assert.Equal(t, "varanasi", svc.gotCity)
	assert.Equal(t, schema.CategoryFood, svc.gotCategory)
	assert.Len(t, svc.gotRecords, 2)
	assert.Contains(t, w.Body.String(), `"upserted":2`)
}

func TestUpsertRoutesToService(t *testing.T) {
	svc := &stubIngestService{count: 1}
	router := adminRouter(svc)

	w := postJSON(router, "/admin/upsert", `{"city":"varanasi","category":"food","records":[{"foodPlace":"Blue Lassi"}]}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "append", svc.gotOp)
	assert.Equal(t, schema.CategoryFood, svc.gotCategory)
	assert.Contains(t, w.Body.String(), `"upserted":1`)
}

func TestIngestUnknownCategory(t *testing.T) {
	svc := &stubIngestService{}
	router := adminRouter(svc)

	w := postJSON(router, "/admin/ingest", `{"city":"varanasi","category":"restaurants","records":[{"a":1}]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.gotCity)
}

func TestIngestServiceErrorMapped(t *testing.T) {
	svc := &stubIngestService{err: utils.ErrProviderUnavailable}
	router := adminRouter(svc)

	w := postJSON(router, "/admin/ingest", `{"city":"varanasi","category":"food","records":[{"a":1}]}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
