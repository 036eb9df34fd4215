package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kgp-ops/wpr-portal/internal/platform/ctxutil"
	"github.com/kgp-ops/wpr-portal/internal/platform/logger"
)

// RequestLogger replaces gin's default logger with the structured one; the
// level follows the response status.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.RequestID != "" {
			fields = append(fields, "request_id", rd.RequestID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "gin_errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
