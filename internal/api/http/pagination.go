package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lifelink-health/donation-backend/internal/apperr"
)

// Pagination parses the page/limit query contract: page defaults to 1,
// limit to 10, and anything that does not parse as an integer is a client
// error rather than a silent clamp.
func Pagination(c *gin.Context) (page, limit int, err error) {
	page, err = intQuery(c, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	limit, err = intQuery(c, "limit", 10)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperr.Validation(name + " must be a non-negative integer")
	}
	return v, nil
}

// FloatQuery parses a required float query parameter.
func FloatQuery(c *gin.Context, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apperr.Validation(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperr.Validation(name + " must be a number")
	}
	return v, nil
}

// FloatQueryDefault parses an optional float query parameter.
func FloatQueryDefault(c *gin.Context, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperr.Validation(name + " must be a number")
	}
	return v, nil
}
