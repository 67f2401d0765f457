package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-backend/internal/chatbot"
	"hotel-backend/internal/domain"
	"hotel-backend/internal/domain/models"
	"hotel-backend/internal/sessions"
	"hotel-backend/internal/utils"

	"github.com/google/uuid"
)

// GenerativeClient is the optional LLM port. Any error means "answer
// from templates instead".
type GenerativeClient interface {
	Configured() bool
	Complete(ctx context.Context, system string, history []models.Turn) (string, error)
}

const systemPrompt = `You are the booking assistant for Alpin Resort, a small mountain hotel in the Albanian Alps.
Room types: Standard Mountain Room (max 2 guests, 5000 Lek/night), Deluxe Mountain View (max 3 guests, 8000 Lek/night), Premium Suite (max 4 guests, 12000 Lek/night).
Check-out day is free; a deposit of half the total is due upfront.
Answer briefly and help the guest provide name, email, dates, room type and guest count. Answer in the guest's language (English or Albanian).`

// ChatReply is the outcome of one chat turn.
type ChatReply struct {
	SessionID      string
	Message        string
	BookingCreated *models.Booking
	MissingFields  []string
}

// ChatService appends each utterance to the session transcript,
// re-extracts booking fields from the whole transcript, creates the
// booking once complete, and composes the assistant reply.
type ChatService struct {
	Sessions  sessions.Store
	Generate  GenerativeClient
	RequestID string

	// CreateBooking is injected so chat tests run without a database.
	CreateBooking func(input models.BookingInput) (models.Booking, error)

	// Now is overridable in tests.
	Now func() time.Time
}

func (s ChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// HandleMessage processes one user utterance for a session.
func (s ChatService) HandleMessage(ctx context.Context, sessionID, message string) (ChatReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatReply{}, domain.ValidationError{Field: "message", Msg: "message is required"}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conv, ok := s.Sessions.Get(sessionID)
	if !ok {
		conv = &models.Conversation{}
	}
	now := s.now()
	conv.Turns = append(conv.Turns, models.Turn{Role: models.RoleUser, Text: message, Timestamp: now})

	info := chatbot.Extract(conv.Turns, now)
	missing := info.Missing()

	reply := ChatReply{SessionID: sessionID, MissingFields: missing}

	switch {
	case info.IsComplete() && conv.BookingID == 0 && s.CreateBooking != nil:
		booking, err := s.CreateBooking(models.BookingInput{
			GuestName:      info.Name,
			Email:          info.Email,
			Phone:          info.Phone,
			RoomType:       info.RoomType,
			CheckInDate:    *info.CheckIn,
			CheckOutDate:   *info.CheckOut,
			NumberOfGuests: info.Guests,
			RoomsBooked:    1,
			Source:         models.SourceChatbot,
		})
		if err != nil {
			// validation/availability problems go back into the chat,
			// never silently dropped
			if domain.IsValidation(err) || domain.IsConflict(err) {
				reply.Message = chatbot.BookingProblemReply(err)
			} else {
				utils.LogEvent(s.RequestID, "chat", "booking_failed", fmt.Sprintf("session=%s err=%v", sessionID, err))
				reply.Message = "Something went wrong while saving your booking. Nothing was charged, please try again in a moment."
			}
		} else {
			conv.BookingID = booking.ID
			reply.BookingCreated = &booking
			reply.Message = chatbot.BookingConfirmedReply(booking)
		}
	default:
		reply.Message = s.composeReply(ctx, conv.Turns, message, missing)
	}

	conv.Turns = append(conv.Turns, models.Turn{Role: models.RoleAssistant, Text: reply.Message, Timestamp: s.now()})
	s.Sessions.Put(sessionID, conv)
	return reply, nil
}

// composeReply prefers the generative backend; on any failure it answers
// from templates, appending a prompt for the next missing field so the
// conversation keeps moving toward a booking.
func (s ChatService) composeReply(ctx context.Context, turns []models.Turn, message string, missing []string) string {
	if s.Generate != nil && s.Generate.Configured() {
		text, err := s.Generate.Complete(ctx, systemPrompt, turns)
		if err == nil {
			return text
		}
		utils.LogEvent(s.RequestID, "chat", "llm_fallback", fmt.Sprintf("err=%v", err))
	}
	answer := chatbot.FallbackReply(message)
	if len(missing) > 0 && len(missing) < 6 {
		answer += " " + chatbot.PromptForMissing(missing)
	}
	return answer
}
