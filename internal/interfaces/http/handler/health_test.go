package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct{ err error }

func (s stubChecker) HealthCheck(context.Context) error { return s.err }

func ready(t *testing.T, h *HealthHandler) (int, readinessResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ready", h.Ready)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	var resp readinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestReady(t *testing.T) {
	t.Run("all ok", func(t *testing.T) {
		code, resp := ready(t, NewHealthHandler("1.0.0", stubChecker{}, stubChecker{}))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Checks["redis"].Status)
	})

	t.Run("postgres down", func(t *testing.T) {
		code, resp := ready(t, NewHealthHandler("1.0.0", stubChecker{err: errors.New("connection refused")}, nil))
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "not_ready", resp.Status)
		assert.Equal(t, "error", resp.Checks["postgres"].Status)
		assert.Equal(t, "connection refused", resp.Checks["postgres"].Error)
		assert.NotContains(t, resp.Checks, "redis")
	})

	t.Run("redis down only degrades", func(t *testing.T) {
		code, resp := ready(t, NewHealthHandler("1.0.0", stubChecker{}, stubChecker{err: errors.New("timeout")}))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", resp.Checks["redis"].Status)
	})
}
