package api

import (
	"log"
	stdhttp "net/http"

	intconfig "hotel-backend/internal/config"
	h "hotel-backend/internal/http/handlers"
	"hotel-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		api.GET("/rooms", h.GetRooms)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		bookings := api.Group("/bookings")
		bookings.GET("/availability", h.GetAvailability)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/confirmation", h.GetBookingConfirmationPDF)
		bookings.DELETE("/:id", h.CancelBooking)

		admin := api.Group("")
		admin.Use(middleware.AdminAuth(env.JWTSecret))
		admin.GET("/bookings", h.ListBookings)
		admin.PUT("/bookings/:id/status", h.UpdateBookingStatus)

		chat := api.Group("/chat")
		chat.POST("/message", h.ChatMessage)
	}

	return r
}
