package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"yatube/internal/config"
	"yatube/internal/core/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": msg} with the status matching err. Validation
// errors also carry "field". Unexpected errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logUnexpected(c, err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": err.Error()}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		body["error"] = ve.Message
		if ve.Field != "" {
			body["field"] = ve.Field
		}
	}
	c.JSON(status, body)
}

func logUnexpected(c *gin.Context, err error) {
	config.Logger.Error("Request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("userID", c.GetString("userID")),
		zap.Error(err))
}

// idParam reads a numeric path parameter. Anything else is a 404, like an
// unknown id.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
