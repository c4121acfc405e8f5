package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/center-locator/app/controllers"
	"github.com/center-locator/app/responses"
	"github.com/center-locator/app/services"
	"github.com/center-locator/internal/normalizer"
	"github.com/center-locator/internal/resolver"
)

const fixturePath = "../internal/resolver/testdata/centers.json"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	r := resolver.NewResolver(normalizer.Default(), logger)
	catalog := services.NewCatalogService(services.NewFileCatalogSource(fixturePath), r, nil, logger)
	require.NoError(t, catalog.Init(context.Background()))
	require.Equal(t, 8, catalog.Current().Len())

	cache := services.NewMemoryAnswerCache(100, time.Minute)
	chat := services.NewChatService(catalog, cache, services.ChatOptions{Timeout: time.Second, MaxBatch: 2, BatchWorkers: 2}, logger)
	admin := services.NewAdminService(catalog, chat, logger)

	router := gin.New()
	SetupAllRoutes(router,
		Options{ServiceName: "center-locator", Version: "test", CORSOrigins: []string{"*"}},
		controllers.NewChatController(chat, catalog, "center-locator", logger),
		controllers.NewAdminController(admin, logger),
		logger)
	return router
}

func do(router *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestChatRoute(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/chat", `{"message":"Padilla 239 in Barcelona"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	resp := decode[responses.ChatResponse](t, w)
	assert.Equal(t, "single_match", resp.Outcome)
	assert.True(t, strings.HasPrefix(resp.Response, "I believe you're referring to **Padilla** in Barcelona."))
	require.Len(t, resp.Centers, 1)
	assert.Equal(t, "ES0323", resp.Centers[0].Code)
	assert.Equal(t, w.Header().Get(RequestIDHeader), resp.RequestID)
	assert.False(t, resp.CacheHit)

	t.Run("repeat is served from cache", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/chat", `{"message":"padilla 239 in barcelona"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[responses.ChatResponse](t, w).CacheHit)
	})

	t.Run("client request id is kept", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/chat", `{"message":"Chamberi Madrid"}`, RequestIDHeader, "req-42")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-42", decode[responses.ChatResponse](t, w).RequestID)
	})

	t.Run("missing message is underspecified", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/chat", `{}`)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[responses.ChatResponse](t, w)
		assert.Equal(t, "underspecified", resp.Outcome)
		assert.Equal(t, "Please specify a center name, city, or province.", resp.Response)
		assert.NotNil(t, resp.Centers)
	})

	t.Run("bad json", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/chat", `{"message":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", decode[responses.ErrorResponse](t, w).Error)
	})
}

func TestBatchChatRoute(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/api/chat/batch", `{"messages":["Fuencarral 120","xylophone"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[responses.BatchChatResponse](t, w)
	require.Len(t, resp.Results, 2)
	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, "ES0105", resp.Results[0].Centers[0].Code)
	assert.Equal(t, "no_match", resp.Results[1].Outcome)
	assert.Equal(t, 1, resp.Results[1].Index)

	t.Run("too large", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/chat/batch", `{"messages":["a","b","c"]}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "BATCH_TOO_LARGE", decode[responses.ErrorResponse](t, w).Error)
	})

	t.Run("empty list", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/chat/batch", `{"messages":[]}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health", "/v1/health"} {
		w := do(router, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[responses.HealthResponse](t, w)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "center-locator", resp.Service)
		assert.Equal(t, 8, resp.CatalogSize)
		assert.Len(t, resp.CatalogVersion, 16)
	}
}

func TestAdminRoutes(t *testing.T) {
	router := newTestRouter(t)

	t.Run("stats", func(t *testing.T) {
		w := do(router, http.MethodGet, "/v1/admin/stats", "")
		require.Equal(t, http.StatusOK, w.Code)
		stats := decode[services.SystemStats](t, w)
		assert.Equal(t, 8, stats.Catalog.Centers)
		require.NotNil(t, stats.Cache)
		assert.Equal(t, "memory", stats.Cache.Backend)
	})

	t.Run("reload", func(t *testing.T) {
		w := do(router, http.MethodPost, "/v1/admin/catalog/reload", "")
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[responses.ReloadResponse](t, w)
		require.NotNil(t, resp.Report)
		assert.Equal(t, 8, resp.Report.Centers)
		assert.False(t, resp.Report.Changed)
	})

	t.Run("publish without meilisearch", func(t *testing.T) {
		w := do(router, http.MethodPost, "/v1/admin/catalog/publish", "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "MIRROR_DISABLED", decode[responses.ErrorResponse](t, w).Error)
	})

	t.Run("search without meilisearch", func(t *testing.T) {
		w := do(router, http.MethodGet, "/v1/admin/catalog/search?q=padilla", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("invalidate cache", func(t *testing.T) {
		w := do(router, http.MethodPost, "/v1/admin/cache/invalidate", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode[responses.SuccessResponse](t, w).Success)
	})
}

func TestMiscRoutes(t *testing.T) {
	router := newTestRouter(t)

	t.Run("metrics", func(t *testing.T) {
		w := do(router, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "center_locator_catalog_centers")
	})

	t.Run("index", func(t *testing.T) {
		w := do(router, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "POST /api/chat")
	})

	t.Run("not found", func(t *testing.T) {
		w := do(router, http.MethodGet, "/nope", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Route not found")
	})

	t.Run("cors preflight", func(t *testing.T) {
		w := do(router, http.MethodOptions, "/api/chat", "",
			"Origin", "http://example.com",
			"Access-Control-Request-Method", "POST")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
