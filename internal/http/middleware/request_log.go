package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/parampara-backend/internal/platform/ctxutil"
	"github.com/yungbote/parampara-backend/internal/platform/logger"
)

const healthRoute = "/api/health"

// RequestLogger writes one access line per request. Successful health
// probes go to debug.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := accessFields(c, status, time.Since(start))
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request rejected", fields...)
		case c.FullPath() == healthRoute:
			log.Debug("health probe", fields...)
		default:
			log.Info("request served", fields...)
		}
	}
}

func accessFields(c *gin.Context, status int, took time.Duration) []interface{} {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"route", route,
		"path", c.Request.URL.Path,
		"status", status,
		"bytes", c.Writer.Size(),
		"duration_ms", took.Milliseconds(),
		"client_ip", c.ClientIP(),
	}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		fields = append(fields, "request_id", td.RequestID, "trace_id", td.TraceID)
	}
	for _, p := range c.Params {
		fields = append(fields, p.Key, p.Value)
	}
	if len(c.Errors) > 0 {
		fields = append(fields, "error", c.Errors.Last().Error())
	}
	return fields
}
