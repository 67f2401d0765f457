package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

// bookingForm is the normalized creation payload after alias mapping.
type bookingForm struct {
	GuestName       string
	Email           string
	Phone           string
	RoomType        string
	CheckInDate     string
	CheckOutDate    string
	NumberOfGuests  int
	RoomsBooked     int
	SpecialRequests string
	Source          string
}

// bookingFieldAliases declares every accepted client spelling per field.
// The site historically sent a mix of camelCase and snake_case; keeping
// the mapping in one table makes it testable instead of scattering
// fallbacks through the handler.
var bookingFieldAliases = map[string][]string{
	"guestName":       {"guestName", "guest_name", "name", "fullName", "full_name"},
	"email":           {"email"},
	"phone":           {"phone", "phoneNumber", "phone_number"},
	"roomType":        {"roomType", "room_type", "room"},
	"checkInDate":     {"checkInDate", "check_in_date", "checkIn", "check_in"},
	"checkOutDate":    {"checkOutDate", "check_out_date", "checkOut", "check_out"},
	"numberOfGuests":  {"numberOfGuests", "number_of_guests", "guests", "guestCount", "guest_count"},
	"roomsBooked":     {"roomsBooked", "rooms_booked", "rooms"},
	"specialRequests": {"specialRequests", "special_requests", "notes"},
	"source":          {"source"},
}

// adaptBookingForm maps a raw JSON object onto bookingForm using the
// alias table. Unknown keys are ignored.
func adaptBookingForm(raw map[string]any) bookingForm {
	return bookingForm{
		GuestName:       stringField(raw, "guestName"),
		Email:           stringField(raw, "email"),
		Phone:           stringField(raw, "phone"),
		RoomType:        stringField(raw, "roomType"),
		CheckInDate:     stringField(raw, "checkInDate"),
		CheckOutDate:    stringField(raw, "checkOutDate"),
		NumberOfGuests:  intField(raw, "numberOfGuests"),
		RoomsBooked:     intField(raw, "roomsBooked"),
		SpecialRequests: stringField(raw, "specialRequests"),
		Source:          stringField(raw, "source"),
	}
}

func stringField(raw map[string]any, canonical string) string {
	for _, key := range bookingFieldAliases[canonical] {
		if v, ok := raw[key]; ok {
			switch t := v.(type) {
			case string:
				if s := strings.TrimSpace(t); s != "" {
					return s
				}
			case float64:
				return strconv.FormatFloat(t, 'f', -1, 64)
			}
		}
	}
	return ""
}

func intField(raw map[string]any, canonical string) int {
	for _, key := range bookingFieldAliases[canonical] {
		if v, ok := raw[key]; ok {
			switch t := v.(type) {
			case float64:
				return int(t)
			case string:
				if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
					return n
				}
			case fmt.Stringer:
				if n, err := strconv.Atoi(t.String()); err == nil {
					return n
				}
			}
		}
	}
	return 0
}
