package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel-backend/internal/domain"
	"hotel-backend/internal/domain/models"
	"hotel-backend/internal/http/middleware"
	"hotel-backend/internal/repositories"
	"hotel-backend/internal/services"
	"hotel-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		DepositFraction: depositFraction,
		Notifier:        notifier,
		RequestID:       middleware.GetRequestID(c),
	}
}

func bookingJSON(b models.Booking) gin.H {
	return gin.H{
		"id":              b.ID,
		"referenceCode":   b.ReferenceCode,
		"guestName":       b.GuestName,
		"email":           b.Email,
		"phone":           b.Phone,
		"roomType":        b.RoomType,
		"checkInDate":     utils.FormatDate(b.CheckInDate),
		"checkOutDate":    utils.FormatDate(b.CheckOutDate),
		"numberOfGuests":  b.NumberOfGuests,
		"roomsBooked":     b.RoomsBooked,
		"status":          b.Status,
		"totalPrice":      b.TotalPrice,
		"depositAmount":   b.DepositAmount,
		"remainingAmount": b.RemainingAmount,
		"specialRequests": b.SpecialRequests,
		"source":          b.Source,
		"createdAt":       b.CreatedAt.Format(time.RFC3339),
	}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var raw map[string]any
	if !BindJSONOrError(c, &raw) {
		return
	}
	form := adaptBookingForm(raw)

	input := models.BookingInput{
		GuestName:       form.GuestName,
		Email:           form.Email,
		Phone:           form.Phone,
		RoomType:        form.RoomType,
		NumberOfGuests:  form.NumberOfGuests,
		RoomsBooked:     form.RoomsBooked,
		SpecialRequests: form.SpecialRequests,
		Source:          form.Source,
	}
	if form.CheckInDate != "" {
		t, err := utils.ParseDate(form.CheckInDate)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "checkInDate", Msg: "invalid date, expected YYYY-MM-DD"})
			return
		}
		input.CheckInDate = t
	}
	if form.CheckOutDate != "" {
		t, err := utils.ParseDate(form.CheckOutDate)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "checkOutDate", Msg: "invalid date, expected YYYY-MM-DD"})
			return
		}
		input.CheckOutDate = t
	}

	booking, err := bookingService(c).CreateBooking(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": bookingJSON(booking)})
}

// GET /api/bookings/availability?checkInDate&checkOutDate&roomType
func GetAvailability(c *gin.Context) {
	checkInStr := firstQuery(c, "checkInDate", "check_in_date", "checkIn")
	checkOutStr := firstQuery(c, "checkOutDate", "check_out_date", "checkOut")
	roomType := firstQuery(c, "roomType", "room_type")

	checkIn, err := utils.ParseDate(checkInStr)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "checkInDate", Msg: "invalid date, expected YYYY-MM-DD"})
		return
	}
	checkOut, err := utils.ParseDate(checkOutStr)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "checkOutDate", Msg: "invalid date, expected YYYY-MM-DD"})
		return
	}

	svc := services.AvailabilityService{}
	var reports []services.AvailabilityReport
	if roomType != "" {
		report, err := svc.Check(checkIn, checkOut, roomType, 0)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		reports = []services.AvailabilityReport{report}
	} else {
		reports, err = svc.CheckAll(checkIn, checkOut)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	available := false
	for _, r := range reports {
		if r.AvailableRooms > 0 {
			available = true
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"available": available, "rooms": reports})
}

// GET /api/bookings (admin)
func ListBookings(c *gin.Context) {
	filter := repositories.BookingFilter{
		Status:   models.BookingStatus(strings.TrimSpace(c.Query("status"))),
		RoomType: strings.TrimSpace(c.Query("roomType")),
	}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "unknown status"})
		return
	}
	if code, ok := models.NormalizeRoomCode(filter.RoomType); ok {
		filter.RoomType = code
	}
	if v := firstQuery(c, "from", "fromDate"); v != "" {
		t, err := utils.ParseDate(v)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "from", Msg: "invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.FromDate = t
	}
	if v := firstQuery(c, "to", "toDate"); v != "" {
		t, err := utils.ParseDate(v)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "to", Msg: "invalid date, expected YYYY-MM-DD"})
			return
		}
		filter.ToDate = t
	}

	bookings, err := bookingService(c).List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, bookingJSON(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "count": len(out)})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id := parseID(c)
	if id <= 0 {
		return
	}
	booking, err := bookingService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bookingJSON(booking)})
}

// PUT /api/bookings/:id/status (admin)
func UpdateBookingStatus(c *gin.Context) {
	id := parseID(c)
	if id <= 0 {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !BindJSONOrError(c, &body) {
		return
	}
	booking, err := bookingService(c).Transition(id, models.BookingStatus(strings.ToLower(strings.TrimSpace(body.Status))))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bookingJSON(booking)})
}

// DELETE /api/bookings/:id soft-cancels, never a row delete.
func CancelBooking(c *gin.Context) {
	id := parseID(c)
	if id <= 0 {
		return
	}
	booking, err := bookingService(c).Cancel(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": bookingJSON(booking)})
}

func parseID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return 0
	}
	return id
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}
