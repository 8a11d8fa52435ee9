package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifelink-health/donation-backend/internal/apperr"
)

// Error maps the error taxonomy to client-visible statuses. Infrastructure
// failures come back as 503 so callers can apply their own retry policy;
// unknown errors stay opaque 500s.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
		msg = apperr.Message(err)
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
		msg = apperr.Message(err)
	case apperr.KindForbidden:
		status = http.StatusForbidden
		msg = apperr.Message(err)
	case apperr.KindNotFound:
		status = http.StatusNotFound
		msg = apperr.Message(err)
	case apperr.KindConflict:
		status = http.StatusConflict
		msg = apperr.Message(err)
	case apperr.KindCapacityExceeded:
		status = http.StatusConflict
		msg = apperr.Message(err)
	case apperr.KindInfrastructure:
		status = http.StatusServiceUnavailable
		msg = "service temporarily unavailable"
	}

	c.JSON(status, gin.H{"ok": false, "error": msg})
}
