package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bloom-market/internal/handler"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRouter builds a route table whose handlers are never reached; these
// tests exercise only the routes the router serves itself.
func newRouter(opts Options) http.Handler {
	logger := zerolog.Nop()
	return New(
		handler.NewShopHandler(nil, logger),
		handler.NewCustomerHandler(nil, logger),
		handler.NewOrderHandler(nil, logger),
		opts,
		logger,
	)
}

func TestRouter_Health(t *testing.T) {
	r := newRouter(Options{APIPrefix: "/api"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body struct {
		OK   bool   `json:"ok"`
		Time string `json:"time"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	_, err := time.Parse(time.RFC3339, body.Time)
	assert.NoError(t, err)
}

func TestRouter_NotFound(t *testing.T) {
	t.Run("unknown path under the prefix answers with a structured body", func(t *testing.T) {
		r := newRouter(Options{APIPrefix: "/api"})

		req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var body struct {
			Error string `json:"error"`
			Path  string `json:"path"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Not Found", body.Error)
		assert.Equal(t, "/api/nope", body.Path)
	})

	t.Run("path with quotes stays valid JSON", func(t *testing.T) {
		r := newRouter(Options{APIPrefix: "/api"})

		// The decoded path contains literal quotes; the body must escape
		// them rather than emit broken JSON.
		req := httptest.NewRequest(http.MethodGet, "/api/%22oops%22", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var body struct {
			Error string `json:"error"`
			Path  string `json:"path"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Not Found", body.Error)
		assert.Equal(t, `/api/"oops"`, body.Path)
	})

	t.Run("paths outside the prefix get the plain not found", func(t *testing.T) {
		r := newRouter(Options{APIPrefix: "/api"})

		req := httptest.NewRequest(http.MethodGet, "/elsewhere", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NotContains(t, w.Header().Get("Content-Type"), "application/json")
	})

	t.Run("empty prefix falls back to the default", func(t *testing.T) {
		r := newRouter(Options{})

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
