package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"storyverse-api/pkg/logger"
)

// AccessLog 访问日志中间件，skipPaths 中的路径不记录
func AccessLog(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"user_agent", c.Request.UserAgent(),
			"body_size", c.Writer.Size(),
		}
		if userID := c.GetString(ContextUserID); userID != "" {
			args = append(args, "user_id", userID)
		}

		ctx := c.Request.Context()
		switch {
		case c.Writer.Status() >= 500:
			logger.Warn(ctx, "api request failed", args...)
		default:
			logger.Info(ctx, "api request", args...)
		}
	}
}
