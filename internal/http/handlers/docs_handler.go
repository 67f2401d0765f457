package handlers

import (
	"fmt"
	"net/http"

	"hotel-backend/internal/http/middleware"
	"hotel-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/confirmation serves the downloadable PDF.
func GetBookingConfirmationPDF(c *gin.Context) {
	id := parseID(c)
	if id <= 0 {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateConfirmation(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
