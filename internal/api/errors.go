package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/tasktracker/internal/auth"
	"github.com/thenoetrevino/tasktracker/internal/models"
	"github.com/thenoetrevino/tasktracker/internal/serializers"
)

// Response details shared by every endpoint.
const (
	detailNotAuthenticated   = "Authentication credentials were not provided."
	detailInvalidCredentials = "Invalid username/password."
	detailInvalidToken       = "Invalid token."
	detailNotFound           = "Not found."
	detailServerError        = "A server error occurred."
	detailLoginFailed        = "Unable to log in with provided credentials."
)

func detail(msg string) gin.H {
	return gin.H{"detail": msg}
}

// respondErr maps err onto a status code and body. Anything it does not
// recognise is logged and reported as a 500.
func (h *handlers) respondErr(c *gin.Context, err error) {
	var validation serializers.ValidationErrors
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, validation)
	case errors.Is(err, serializers.ErrMalformedBody):
		c.JSON(http.StatusBadRequest, detail(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, detail(detailNotFound))
	case errors.Is(err, models.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{serializers.NonFieldErrors: []string{err.Error()}})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusForbidden, detail(detailInvalidCredentials))
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusForbidden, detail(detailInvalidToken))
	case errors.Is(err, auth.ErrNoCredentials):
		c.JSON(http.StatusForbidden, detail(detailNotAuthenticated))
	default:
		h.logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("request_id", c.GetString(requestIDKey)),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, detail(detailServerError))
	}
}
