package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storyverse-api/pkg/metrics"
)

// ContextRouteClass gin.Context 中记录准入类别的键
const ContextRouteClass = "route_class"

// 指标标签取值
const (
	classSystem    = "system"
	routeUnmatched = "unmatched"
)

// Metrics 按路由模板与准入类别采集请求指标
// 类别由 Admission 写入，嵌套分组时以最内层为准
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = routeUnmatched
		}
		class := RouteClass(c)

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, class, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, class).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			metrics.HTTPResponseSize.WithLabelValues(class).Observe(float64(size))
		}
	}
}

// RouteClass 返回请求所属的准入类别
func RouteClass(c *gin.Context) string {
	if class := c.GetString(ContextRouteClass); class != "" {
		return class
	}
	return classSystem
}
