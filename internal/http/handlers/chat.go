package handlers

import (
	"net/http"

	"hotel-backend/internal/http/middleware"
	"hotel-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/chat/message
func ChatMessage(c *gin.Context) {
	var raw map[string]any
	if !BindJSONOrError(c, &raw) {
		return
	}
	message, _ := raw["message"].(string)
	sessionID, _ := raw["sessionId"].(string)
	if sessionID == "" {
		sessionID, _ = raw["session_id"].(string)
	}

	reqID := middleware.GetRequestID(c)
	svc := services.ChatService{
		Sessions:      chatSessions,
		Generate:      generative,
		RequestID:     reqID,
		CreateBooking: bookingService(c).CreateBooking,
	}

	reply, err := svc.HandleMessage(c.Request.Context(), sessionID, message)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	payload := gin.H{
		"message":   reply.Message,
		"sessionId": reply.SessionID,
	}
	if len(reply.MissingFields) > 0 {
		payload["missingFields"] = reply.MissingFields
	}
	if reply.BookingCreated != nil {
		payload["bookingCreated"] = bookingJSON(*reply.BookingCreated)
	}
	c.JSON(http.StatusOK, payload)
}
