package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"restaurant-pos/internal/common/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	ctxRequestID    = "requestID"
)

// RequestID propagates the caller's X-Request-ID or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func RequestLogger(c *gin.Context, lg *logger.Logger) *logger.Logger {
	return lg.WithRequestID(c.GetString(ctxRequestID))
}

// AccessLog replaces gin's text logger with the JSON one.
func AccessLog(lg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		}
		RequestLogger(c, lg).Debug("http_request", fields)
	}
}

// MaxConcurrent caps in-flight requests; the overflow gets 503 instead of
// queueing behind the database pool. n <= 0 disables the cap.
func MaxConcurrent(n int) gin.HandlerFunc {
	if n <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	slots := make(chan struct{}, n)
	return func(c *gin.Context) {
		select {
		case slots <- struct{}{}:
			defer func() { <-slots }()
			c.Next()
		default:
			WriteProblem(c, http.StatusServiceUnavailable, "busy", "too many concurrent requests")
		}
	}
}
