package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/denlahodnyi/sneakers-store-sub000/internal/config"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/infra"
	"github.com/denlahodnyi/sneakers-store-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshotRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fx, err := repository.LoadFixture("../repository/testdata/catalog.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	cb := infra.NewCircuitBreaker(cfg.Breaker())
	return New(ctx, cfg, nil, nil, repository.NewSnapshotRepository(fx), cb)
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "198.51.100.7:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Routes(t *testing.T) {
	r := newSnapshotRouter(t, &config.Config{Env: "test"})

	for _, path := range []string{
		"/health",
		"/v1/products",
		"/v1/products/pegasus-41-black",
		"/v1/filters",
		"/v1/catalog",
		"/v1/search?q=nike",
		"/v1/categories",
	} {
		w := serve(r, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/v1/orders").Code)
}

func TestRouter_Metrics(t *testing.T) {
	r := newSnapshotRouter(t, &config.Config{Env: "test"})
	serve(r, http.MethodGet, "/v1/products")

	w := serve(r, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",route="/v1/products",status="2xx"}`)
	assert.Contains(t, body, "catalog_store_query_duration_seconds")
}

func TestRouter_RateLimit(t *testing.T) {
	r := newSnapshotRouter(t, &config.Config{Env: "test", RateLimitRPS: 0.001, RateLimitBurst: 2})

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/v1/categories").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/v1/categories").Code)
	w := serve(r, http.MethodGet, "/v1/categories")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "detail"))
}

func TestRouter_SwaggerOnlyOutsideProduction(t *testing.T) {
	dev := newSnapshotRouter(t, &config.Config{Env: "development"})
	assert.NotEqual(t, http.StatusNotFound, serve(dev, http.MethodGet, "/swagger/index.html").Code)

	prod := newSnapshotRouter(t, &config.Config{Env: "production"})
	assert.Equal(t, http.StatusNotFound, serve(prod, http.MethodGet, "/swagger/index.html").Code)
	gin.SetMode(gin.TestMode)
}
