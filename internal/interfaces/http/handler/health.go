package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// HealthChecker 可探测的依赖
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	version string
	checks  map[string]dependency
}

type dependency struct {
	checker  HealthChecker
	required bool
}

// NewHealthHandler 创建健康检查处理器
// redis 为 nil 表示使用内存限流，不参与就绪检查
func NewHealthHandler(version string, pg HealthChecker, redis HealthChecker) *HealthHandler {
	h := &HealthHandler{
		version: version,
		checks:  map[string]dependency{"postgres": {checker: pg, required: true}},
	}
	if redis != nil {
		// Redis 不可用时限流放行，不影响就绪态
		h.checks["redis"] = dependency{checker: redis, required: false}
	}
	return h
}

// WelcomeResponse 根路径响应
type WelcomeResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

// Welcome 根路径
// @Summary 服务信息
// @Tags System
// @Produce json
// @Success 200 {object} WelcomeResponse
// @Router / [get]
func (h *HealthHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, WelcomeResponse{
		Message: "Welcome to StoryVerse API",
		Version: h.version,
	})
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口，并发探测各依赖
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Failure 503 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	var (
		mu     sync.Mutex
		ready  = true
		checks = make(map[string]*readinessCheck, len(h.checks))
	)

	g, gctx := errgroup.WithContext(ctx)
	for name, dep := range h.checks {
		g.Go(func() error {
			result := &readinessCheck{Status: "ok"}
			if dep.checker == nil {
				result.Status = "missing"
			} else {
				start := time.Now()
				err := dep.checker.HealthCheck(gctx)
				result.LatencyMs = time.Since(start).Milliseconds()
				if err != nil {
					result.Status = "error"
					result.Error = err.Error()
				}
			}
			if result.Status != "ok" && !dep.required {
				result.Status = "degraded"
			}

			mu.Lock()
			checks[name] = result
			if result.Status != "ok" && dep.required {
				ready = false
			}
			mu.Unlock()
			// 单个依赖失败不应取消其他探测
			return nil
		})
	}
	_ = g.Wait()

	resp := readinessResponse{Status: "ok", Checks: checks}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
