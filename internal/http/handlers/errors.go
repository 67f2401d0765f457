package handlers

import (
	"errors"
	"net/http"

	"hotel-backend/internal/domain"
	"hotel-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	payload := gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	}
	if details != nil {
		payload["details"] = details
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Validation
// errors that track missing fields also surface them as missingFields
// so the booking form can highlight inputs.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		var ve domain.ValidationError
		errors.As(err, &ve)
		if len(ve.Fields) > 0 {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"missingFields": ve.Fields})
			return
		}
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
