package chatbot

import (
	"fmt"
	"strings"

	"hotel-backend/internal/domain/models"
	"hotel-backend/internal/utils"
)

// Templated answers used whenever the generative backend is down or not
// configured. The widget must always answer something useful.

const greetingReply = "Përshëndetje! Welcome to Alpin Resort. I can help you book a room. Just tell me your dates, room type and how many guests are coming."

const defaultReply = "I can help with room bookings, prices, and availability at Alpin Resort. Tell me your check-in and check-out dates and I'll take it from there."

const roomsReply = "We offer three room types: Standard Mountain Room (up to 2 guests, 5.000 Lek/night), Deluxe Mountain View (up to 3 guests, 8.000 Lek/night) and Premium Suite (up to 4 guests, 12.000 Lek/night)."

const locationReply = "Alpin Resort sits in the Albanian Alps, about two hours from Shkodër. We can arrange transfers on request, mention it in your booking's special requests."

var fieldPrompts = map[string]string{
	"name":     "May I have your full name for the reservation?",
	"email":    "What email address should the confirmation go to?",
	"roomType": "Which room would you like: Standard, Deluxe or Premium?",
	"checkIn":  "What date would you like to check in?",
	"checkOut": "And what date will you be checking out?",
	"guests":   "How many guests will be staying?",
}

// FallbackReply answers from templates keyed on the user's message.
func FallbackReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "hello", "hi ", "hey", "përshëndetje", "pershendetje", "ckemi", "çkemi"):
		return greetingReply
	case containsAny(lower, "price", "cost", "how much", "cmim", "çmim", "sa kushton"):
		return roomsReply
	case containsAny(lower, "room", "dhome", "dhomë", "suite", "standard", "deluxe", "premium"):
		return roomsReply
	case containsAny(lower, "where", "location", "address", "ku ndodhet", "adresa"):
		return locationReply
	default:
		return defaultReply
	}
}

// PromptForMissing asks for the first still-missing booking field.
func PromptForMissing(missing []string) string {
	for _, field := range missing {
		if prompt, ok := fieldPrompts[field]; ok {
			return prompt
		}
	}
	return defaultReply
}

// BookingConfirmedReply summarizes a booking just created from chat.
func BookingConfirmedReply(b models.Booking) string {
	return fmt.Sprintf(
		"Your booking is in! Reference %s: %s room, %s to %s, %d guest(s). Total %s, deposit %s. A confirmation email is on its way to %s.",
		b.ReferenceCode, b.RoomType,
		utils.FormatDate(b.CheckInDate), utils.FormatDate(b.CheckOutDate),
		b.NumberOfGuests,
		utils.FormatLek(b.TotalPrice), utils.FormatLek(b.DepositAmount),
		b.Email,
	)
}

// BookingProblemReply surfaces a create failure back into the chat
// instead of swallowing it.
func BookingProblemReply(err error) string {
	return fmt.Sprintf("I couldn't complete the booking: %s. Could you correct that and we'll try again?", err.Error())
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
