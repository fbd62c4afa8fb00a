// Package router 提供 HTTP 路由配置
package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"storyverse-api/internal/application/admission"
	"storyverse-api/internal/config"
	"storyverse-api/internal/interfaces/http/dto"
	"storyverse-api/internal/interfaces/http/handler"
	"storyverse-api/internal/interfaces/http/middleware"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/utils"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Health *handler.HealthHandler
	User   *handler.UserHandler
	Story  *handler.StoryHandler
	Social *handler.SocialHandler
	AI     *handler.AIHandler
}

// Router HTTP 路由器
type Router struct {
	engine     *gin.Engine
	cfg        *config.Config
	handlers   *Handlers
	admission  *admission.Controller
	jwtManager *utils.JWTManager
}

// New 创建新的路由器，admissionCtrl 为 nil 时不限流
func New(cfg *config.Config, handlers *Handlers, admissionCtrl *admission.Controller, jwtManager *utils.JWTManager) *Router {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	// 只采信可信代理转发的 X-Forwarded-For
	if err := engine.SetTrustedProxies(cfg.Server.HTTP.TrustedProxies); err != nil {
		logger.Warn(context.Background(), "invalid trusted proxies, trusting none",
			"trusted_proxies", cfg.Server.HTTP.TrustedProxies,
			"error", err.Error(),
		)
		_ = engine.SetTrustedProxies(nil)
	}

	r := &Router{
		engine:     engine,
		cfg:        cfg,
		handlers:   handlers,
		admission:  admissionCtrl,
		jwtManager: jwtManager,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

// Engine 返回 Gin Engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// setupMiddleware 配置中间件
func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())

	quiet := []string{"/health", "/live", "/ready", r.cfg.Observability.Metrics.Path}

	if r.cfg.Observability.Tracing.Enabled {
		r.engine.Use(middleware.Trace(r.cfg.App.Name, quiet...))
		r.engine.Use(middleware.TraceContext())
	}

	r.engine.Use(middleware.AccessLog(quiet...))
	r.engine.Use(middleware.CORS(r.cfg.Security.CORS))

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.Use(middleware.Metrics())
	}

	r.engine.Use(middleware.BodyLimit(r.cfg.Server.HTTP.MaxBodyBytes))
}

// setupRoutes 配置路由
func (r *Router) setupRoutes() {
	h := r.handlers

	// 系统端点不限流
	r.engine.GET("/health", h.Health.Health)
	r.engine.GET("/ready", h.Health.Ready)
	r.engine.GET("/live", h.Health.Live)

	if r.cfg.Observability.Metrics.Enabled {
		r.engine.GET(r.cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	r.engine.GET("/", r.limit(admission.ClassAPI), h.Health.Welcome)

	api := r.engine.Group("/api", r.limit(admission.ClassAPI))
	RegisterAPIRoutes(api, h, r.auth(), r.limit)

	r.engine.NoRoute(func(c *gin.Context) {
		dto.NotFound(c, "Route not found")
	})
}

func (r *Router) auth() gin.HandlerFunc {
	return middleware.Auth(r.jwtManager)
}

func (r *Router) limit(class admission.RouteClass) gin.HandlerFunc {
	return middleware.Admission(r.admission, class)
}
