// Package middleware 提供 HTTP 中间件
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storyverse-api/internal/application/admission"
	"storyverse-api/internal/interfaces/http/dto"
	apperrors "storyverse-api/pkg/errors"
	"storyverse-api/pkg/logger"
	"storyverse-api/pkg/metrics"
)

// 限流响应头
const (
	HeaderRetryAfter         = "Retry-After"
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
)

// RateLimitMessage 被拒绝时的提示
const RateLimitMessage = "Too many requests, please try again later."

// Admission 按路由类别准入
// ctrl 为 nil 时不限流；计数存储出错时放行，只带 X-RateLimit-Limit
func Admission(ctrl *admission.Controller, class admission.RouteClass) gin.HandlerFunc {
	if ctrl == nil {
		return func(c *gin.Context) {
			c.Set(ContextRouteClass, string(class))
			c.Next()
		}
	}

	return func(c *gin.Context) {
		c.Set(ContextRouteClass, string(class))
		ctx := c.Request.Context()
		identity := ClientIdentity(c)

		decision, err := ctrl.Check(ctx, class, identity)
		if err != nil {
			metrics.AdmissionDecisionsTotal.WithLabelValues(string(class), "error").Inc()
			logger.Warn(ctx, "admission check failed, request allowed",
				"class", string(class),
				"identity", identity,
				"error", err.Error(),
			)
			if policy, ok := ctrl.Policy(class); ok {
				c.Header(HeaderRateLimitLimit, strconv.Itoa(policy.MaxRequests))
			}
			c.Next()
			return
		}

		c.Header(HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			metrics.AdmissionDecisionsTotal.WithLabelValues(string(class), "rejected").Inc()
			c.Header(HeaderRetryAfter, strconv.Itoa(RetryAfterSeconds(decision.RetryAfter)))
			logger.Debug(ctx, "request rejected by admission",
				"class", string(class),
				"identity", identity,
				"retry_after_ms", decision.RetryAfter.Milliseconds(),
			)
			dto.ErrorWithDetail(c, http.StatusTooManyRequests, RateLimitMessage, &dto.ErrorDetail{
				ErrorCode: string(apperrors.CodeTooManyRequests),
			})
			return
		}

		metrics.AdmissionDecisionsTotal.WithLabelValues(string(class), "allowed").Inc()
		c.Next()
	}
}

// ClientIdentity 已认证时按用户计数，否则按来源地址
func ClientIdentity(c *gin.Context) string {
	if userID := c.GetString(ContextUserID); userID != "" {
		return "user:" + userID
	}
	return "ip:" + c.ClientIP()
}

// RetryAfterSeconds 向上取整到秒，至少为 1
func RetryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
