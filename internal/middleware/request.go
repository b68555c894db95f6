package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pageza/recipe-finder/backend/internal/notify"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

const collectorKey = "notifications"

// RequestContext tags each request with an id, attaches a request-scoped logger and a
// notification collector to the request context, and logs the completed request.
func RequestContext(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLog := log.With().Str("request_id", requestID).Logger()
		collector := &notify.Collector{}

		ctx := reqLog.WithContext(c.Request.Context())
		ctx = notify.WithCollector(ctx, collector)
		c.Request = c.Request.WithContext(ctx)
		c.Set(collectorKey, collector)

		c.Next()

		status := c.Writer.Status()
		event := reqLog.Info()
		if status >= 500 {
			event = reqLog.Error()
		} else if status >= 400 {
			event = reqLog.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// Notifications drains the notifications collected for this request
func Notifications(c *gin.Context) []notify.Notification {
	v, exists := c.Get(collectorKey)
	if !exists {
		return []notify.Notification{}
	}
	collector, ok := v.(*notify.Collector)
	if !ok {
		return []notify.Notification{}
	}
	return collector.Drain()
}
