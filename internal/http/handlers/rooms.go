package handlers

import (
	"net/http"

	"hotel-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/rooms returns active room types for the booking form.
func GetRooms(c *gin.Context) {
	rooms, err := repositories.RoomRepository{}.ListActive()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
