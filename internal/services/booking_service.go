package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "hotel-backend/internal/config"
	"hotel-backend/internal/domain"
	"hotel-backend/internal/domain/models"
	"hotel-backend/internal/repositories"
	"hotel-backend/internal/utils"

	"github.com/google/uuid"
)

// BookingService owns the booking lifecycle: creation, status
// transitions, and the notification side effect.
type BookingService struct {
	BookingRepo     repositories.BookingRepository
	RoomRepo        repositories.RoomRepository
	DB              *sql.DB
	DepositFraction float64
	Notifier        Notifier
	RequestID       string

	// Now is overridable in tests so "check-in not in the past" is
	// deterministic.
	Now func() time.Time
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) depositFraction() float64 {
	if s.DepositFraction > 0 {
		return s.DepositFraction
	}
	return domain.DefaultDepositFraction
}

// CreateBooking validates input, checks capacity under a room-type row
// lock, prices the stay, persists, and kicks off best-effort
// notifications. The availability recount and the insert share one
// transaction, so two requests racing for the last unit serialize on
// the FOR UPDATE lock and exactly one wins.
func (s BookingService) CreateBooking(input models.BookingInput) (models.Booking, error) {
	input.GuestName = utils.NormalizeSpace(input.GuestName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	input.SpecialRequests = strings.TrimSpace(input.SpecialRequests)

	if missing := missingBookingFields(input); len(missing) > 0 {
		return models.Booking{}, domain.ValidationError{Msg: "missing required fields", Fields: missing}
	}
	if !looksLikeEmail(input.Email) {
		return models.Booking{}, domain.ValidationError{Field: "email", Msg: "invalid email address"}
	}

	code, ok := models.NormalizeRoomCode(input.RoomType)
	if !ok {
		return models.Booking{}, domain.ValidationError{Field: "roomType", Msg: "unknown room type"}
	}

	if err := ValidateStayDates(input.CheckInDate, input.CheckOutDate); err != nil {
		return models.Booking{}, err
	}
	today := utils.DateOnly(s.now())
	if utils.DateOnly(input.CheckInDate).Before(today) {
		return models.Booking{}, domain.ValidationError{Field: "checkInDate", Msg: "check-in date is in the past"}
	}

	if input.RoomsBooked <= 0 {
		input.RoomsBooked = 1
	}
	if input.NumberOfGuests < 1 {
		return models.Booking{}, domain.ValidationError{Field: "numberOfGuests", Msg: "at least one guest required"}
	}

	status := input.InitialStatus
	if status == "" {
		status = models.StatusPending
	}
	if status != models.StatusPending && status != models.StatusConfirmed {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "initial status must be pending or confirmed"}
	}
	source := input.Source
	if source == "" {
		source = models.SourceWebsite
	}

	tx, err := s.db().Begin()
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	repo := s.bookings()
	rt, err := repo.LockRoomType(tx, code)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Booking{}, domain.ValidationError{Field: "roomType", Msg: "unknown room type"}
		}
		return models.Booking{}, err
	}
	if !rt.IsActive {
		return models.Booking{}, domain.ValidationError{Field: "roomType", Msg: "room type is not open for booking"}
	}
	if input.NumberOfGuests > rt.MaxGuests {
		return models.Booking{}, domain.ValidationError{
			Field: "numberOfGuests",
			Msg:   fmt.Sprintf("%s rooms take at most %d guests", rt.Code, rt.MaxGuests),
		}
	}

	booked, err := repo.CountOccupied(tx, rt.Code, input.CheckInDate, input.CheckOutDate, 0)
	if err != nil {
		return models.Booking{}, err
	}
	available := rt.TotalRooms - booked
	if available < 0 {
		available = 0
	}
	if available < input.RoomsBooked {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("no rooms available: %d requested, %d free", input.RoomsBooked, available),
		}
	}

	nights := utils.NightsBetween(input.CheckInDate, input.CheckOutDate)
	quote := domain.PriceStay(nights, rt.PricePerNight, input.RoomsBooked, s.depositFraction())

	booking := models.Booking{
		ReferenceCode:   newReferenceCode(),
		GuestName:       input.GuestName,
		Email:           input.Email,
		Phone:           input.Phone,
		RoomType:        rt.Code,
		CheckInDate:     utils.DateOnly(input.CheckInDate),
		CheckOutDate:    utils.DateOnly(input.CheckOutDate),
		NumberOfGuests:  input.NumberOfGuests,
		RoomsBooked:     input.RoomsBooked,
		Status:          status,
		TotalPrice:      quote.TotalPrice,
		DepositAmount:   quote.DepositAmount,
		RemainingAmount: quote.RemainingAmount,
		SpecialRequests: input.SpecialRequests,
		Source:          source,
		CreatedAt:       s.now(),
	}
	if err := repo.Insert(tx, &booking); err != nil {
		return models.Booking{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("id=%d ref=%s room=%s nights=%d total=%d", booking.ID, booking.ReferenceCode, booking.RoomType, nights, booking.TotalPrice))

	s.notifyCreated(booking)
	return booking, nil
}

// Transition applies one step of the status state machine.
func (s BookingService) Transition(id int64, to models.BookingStatus) (models.Booking, error) {
	if !models.ValidStatus(to) {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	booking, err := s.bookings().GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	// Legality is judged against what clients observe: a confirmed stay
	// past its check-out already reads as completed, which is terminal.
	// Writing that derived state back is the one allowed exception.
	current := booking.EffectiveStatus(s.now())
	materialize := to == current && to != booking.Status
	if !models.CanTransition(current, to) && !materialize {
		return models.Booking{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("cannot move booking from %s to %s", current, to),
		}
	}
	if err := s.bookings().UpdateStatus(id, to); err != nil {
		return models.Booking{}, err
	}
	booking.Status = to
	utils.LogEvent(s.RequestID, "booking", "transition", fmt.Sprintf("id=%d status=%s", id, to))
	return booking, nil
}

// Cancel soft-cancels: a status change, never a row delete. Cancelled
// bookings stop occupying capacity immediately.
func (s BookingService) Cancel(id int64) (models.Booking, error) {
	return s.Transition(id, models.StatusCancelled)
}

// Get returns one booking with its status derived at read time.
func (s BookingService) Get(id int64) (models.Booking, error) {
	booking, err := s.bookings().GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}
	booking.Status = booking.EffectiveStatus(s.now())
	return booking, nil
}

// List returns bookings for the admin panel, statuses derived at read
// time.
func (s BookingService) List(f repositories.BookingFilter) ([]models.Booking, error) {
	bookings, err := s.bookings().List(f)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range bookings {
		bookings[i].Status = bookings[i].EffectiveStatus(now)
	}
	return bookings, nil
}

// notifyCreated dispatches confirmation emails off the request path.
// Failures are logged and never affect the persisted booking.
func (s BookingService) notifyCreated(b models.Booking) {
	if s.Notifier == nil {
		return
	}
	notifier := s.Notifier
	requestID := s.RequestID
	go func() {
		if err := notifier.SendBookingConfirmation(b); err != nil {
			utils.LogEvent(requestID, "notify", "guest_confirmation_failed", fmt.Sprintf("booking_id=%d err=%v", b.ID, err))
		}
		if err := notifier.SendAdminAlert(b); err != nil {
			utils.LogEvent(requestID, "notify", "admin_alert_failed", fmt.Sprintf("booking_id=%d err=%v", b.ID, err))
		}
	}()
}

func missingBookingFields(input models.BookingInput) []string {
	var missing []string
	if input.GuestName == "" {
		missing = append(missing, "guestName")
	}
	if input.Email == "" {
		missing = append(missing, "email")
	}
	if input.RoomType == "" {
		missing = append(missing, "roomType")
	}
	if input.CheckInDate.IsZero() {
		missing = append(missing, "checkInDate")
	}
	if input.CheckOutDate.IsZero() {
		missing = append(missing, "checkOutDate")
	}
	if input.NumberOfGuests == 0 {
		missing = append(missing, "numberOfGuests")
	}
	return missing
}

func looksLikeEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}

func newReferenceCode() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}
