package middleware

import (
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"warranty-tracker/pkg/log"
	"warranty-tracker/pkg/response"
)

// RequestIDHeader is the HTTP header name for request ID.
const RequestIDHeader = "X-Request-ID"

// healthPaths are logged at Debug level to keep probe noise out of the logs.
var healthPaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/live":    true,
	"/metrics": true,
}

// RequestID reuses the caller's X-Request-ID or generates one, echoes it in
// the response and stores it in the request context for the logger.
func (m Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(log.SetRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// Logger logs one line per request.
func (m Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		template := "http request: %s %s status=%d duration=%s client=%s"
		args := []any{c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP()}

		if healthPaths[c.Request.URL.Path] {
			m.l.Debugf(ctx, template, args...)
			return
		}
		m.l.Infof(ctx, template, args...)
	}
}

// Recovery turns a panic into a 500 response.
func (m Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				m.l.Errorf(c.Request.Context(), "panic recovered: %v %s %s\n%s",
					err, c.Request.Method, c.Request.URL.Path, debug.Stack())
				response.InternalError(c, nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}
