package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single utterance in a chat session.
type Turn struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is the per-session transcript plus the id of a booking
// already created from it, so a completed chat does not book twice.
type Conversation struct {
	Turns     []Turn
	BookingID int64
}

// PartialBookingInfo is the best-effort extraction result accumulated
// over a whole transcript. Nil date pointers mean "not found yet".
type PartialBookingInfo struct {
	Name     string
	Email    string
	Phone    string
	RoomType string
	CheckIn  *time.Time
	CheckOut *time.Time
	Guests   int
}

// Missing lists required fields not yet extracted. Phone is optional.
func (p PartialBookingInfo) Missing() []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.RoomType == "" {
		missing = append(missing, "roomType")
	}
	if p.CheckIn == nil {
		missing = append(missing, "checkIn")
	}
	if p.CheckOut == nil {
		missing = append(missing, "checkOut")
	}
	if p.Guests == 0 {
		missing = append(missing, "guests")
	}
	return missing
}

func (p PartialBookingInfo) IsComplete() bool {
	return len(p.Missing()) == 0
}
