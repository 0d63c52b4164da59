package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thenoetrevino/tasktracker/internal/auth"
	"github.com/thenoetrevino/tasktracker/internal/models"
)

// Context keys set by the middleware.
const (
	requestIDKey = "request_id"
	userKey      = "user"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// requestID reuses the caller's X-Request-ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs one line per request once it has been handled.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		attrs := []slog.Attr{
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}
		if u := currentUser(c); u != nil {
			attrs = append(attrs, slog.String("user", u.Username))
		}
		logger.LogAttrs(c.Request.Context(), level, "request", attrs...)
	}
}

// trackMetrics counts requests by outcome.
func trackMetrics(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		m.InFlight.Add(1)
		defer m.InFlight.Add(-1)
		c.Next()
		m.observe(c.Writer.Status())
	}
}

// requireAuth rejects requests without valid credentials with 403 before
// any handler runs.
func (h *handlers) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.auth.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			if auth.IsAuthError(err) {
				h.metrics.IncAuthFailures()
			}
			h.respondErr(c, err)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the authenticated user of the request.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
