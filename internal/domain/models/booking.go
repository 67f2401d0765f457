package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking provenance tags.
const (
	SourceWebsite = "Website"
	SourceChatbot = "Chatbot"
	SourcePhone   = "Phone"
	SourceAdmin   = "Admin"
)

// ValidStatus reports whether s is one of the four booking states.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransition encodes the booking state machine. Cancelled and
// completed are terminal.
func CanTransition(from, to BookingStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	}
	return false
}

// OccupiesCapacity reports whether a booking in this state blocks rooms.
func OccupiesCapacity(s BookingStatus) bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking is a persisted reservation. Dates are date-only; a stay
// occupies [CheckInDate, CheckOutDate), the check-out day itself is free.
type Booking struct {
	ID              int64         `json:"id"`
	ReferenceCode   string        `json:"referenceCode"`
	GuestName       string        `json:"guestName"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone,omitempty"`
	RoomType        string        `json:"roomType"`
	CheckInDate     time.Time     `json:"checkInDate"`
	CheckOutDate    time.Time     `json:"checkOutDate"`
	NumberOfGuests  int           `json:"numberOfGuests"`
	RoomsBooked     int           `json:"roomsBooked"`
	Status          BookingStatus `json:"status"`
	TotalPrice      int64         `json:"totalPrice"`
	DepositAmount   int64         `json:"depositAmount"`
	RemainingAmount int64         `json:"remainingAmount"`
	SpecialRequests string        `json:"specialRequests,omitempty"`
	Source          string        `json:"source"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// EffectiveStatus derives the externally visible state: a confirmed stay
// whose check-out has passed reads as completed without a stored
// transition.
func (b Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == StatusConfirmed {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		// Compare calendar days; the scanned check-out may carry a
		// non-UTC location depending on the driver config.
		out := time.Date(b.CheckOutDate.Year(), b.CheckOutDate.Month(), b.CheckOutDate.Day(), 0, 0, 0, 0, time.UTC)
		if !out.After(today) {
			return StatusCompleted
		}
	}
	return b.Status
}

// BookingInput carries validated-enough creation data into the lifecycle
// manager. RoomType may still be an alias; dates are date-only.
type BookingInput struct {
	GuestName       string
	Email           string
	Phone           string
	RoomType        string
	CheckInDate     time.Time
	CheckOutDate    time.Time
	NumberOfGuests  int
	RoomsBooked     int
	SpecialRequests string
	Source          string
	// InitialStatus defaults to pending; trusted callers (admin) may
	// create directly as confirmed.
	InitialStatus BookingStatus
}
