package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

// RequestLogger logs each request with method, path, status, and latency.
func RequestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		}
		if query != "" {
			fields = append(fields, "query", query)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("request completed", fields...)
		case status >= 400:
			log.Warnw("request completed", fields...)
		default:
			log.Infow("request completed", fields...)
		}
	}
}
