package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"hotel-backend/internal/domain"
	"hotel-backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("bad date %s: %v", s, err)
	}
	return d
}

func bookingServiceAt(t *testing.T, today string) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	svc := BookingService{
		DB:              db,
		DepositFraction: 0.5,
		Now:             func() time.Time { return day(t, today) },
	}
	return svc, mock, func() { db.Close() }
}

func standardRoomRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"code", "display_name", "localized_name", "total_rooms", "min_guests", "max_guests", "price_per_night", "is_active",
	}).AddRow("Standard", "Standard Mountain Room", "Dhomë Standarde", 5, 1, 2, 5000, true)
}

func validInput(t *testing.T) models.BookingInput {
	return models.BookingInput{
		GuestName:      "Arben  Hoxha",
		Email:          " Arben@Example.com ",
		RoomType:       "standard room",
		CheckInDate:    day(t, "2026-08-15"),
		CheckOutDate:   day(t, "2026-08-17"),
		NumberOfGuests: 2,
	}
}

func TestCreateBookingPricesAndPersists(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	checkIn := day(t, "2026-08-15")
	checkOut := day(t, "2026-08-17")

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("Standard").WillReturnRows(standardRoomRow())
	mock.ExpectQuery(`SUM\(rooms_booked\)`).
		WithArgs("Standard", checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(3))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	b, err := svc.CreateBooking(validInput(t))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.ID != 42 {
		t.Fatalf("id = %d", b.ID)
	}
	// 2 nights x 5000 Lek, split 50/50
	if b.TotalPrice != 10000 || b.DepositAmount != 5000 || b.RemainingAmount != 5000 {
		t.Fatalf("pricing = %d/%d/%d", b.TotalPrice, b.DepositAmount, b.RemainingAmount)
	}
	if b.Status != models.StatusPending {
		t.Fatalf("status = %s", b.Status)
	}
	if b.Source != models.SourceWebsite {
		t.Fatalf("source = %s", b.Source)
	}
	if b.RoomType != models.RoomStandard {
		t.Fatalf("roomType = %s", b.RoomType)
	}
	if b.GuestName != "Arben Hoxha" || b.Email != "arben@example.com" {
		t.Fatalf("input not normalized: %q %q", b.GuestName, b.Email)
	}
	if !strings.HasPrefix(b.ReferenceCode, "BK-") || len(b.ReferenceCode) != 11 {
		t.Fatalf("reference code = %q", b.ReferenceCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateBookingLastRoomSucceeds(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("Standard").WillReturnRows(standardRoomRow())
	mock.ExpectQuery(`SUM\(rooms_booked\)`).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(4))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(43, 1))
	mock.ExpectCommit()

	if _, err := svc.CreateBooking(validInput(t)); err != nil {
		t.Fatalf("last room should be bookable: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateBookingFullHouseConflicts(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("Standard").WillReturnRows(standardRoomRow())
	mock.ExpectQuery(`SUM\(rooms_booked\)`).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(5))
	mock.ExpectRollback()

	_, err := svc.CreateBooking(validInput(t))
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateBookingGuestCap(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("Standard").WillReturnRows(standardRoomRow())
	mock.ExpectRollback()

	input := validInput(t)
	input.NumberOfGuests = 3 // Standard takes at most 2
	_, err := svc.CreateBooking(input)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateBookingInactiveRoomType(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	closedRoom := sqlmock.NewRows([]string{
		"code", "display_name", "localized_name", "total_rooms", "min_guests", "max_guests", "price_per_night", "is_active",
	}).AddRow("Standard", "Standard Mountain Room", "Dhomë Standarde", 5, 1, 2, 5000, false)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("Standard").WillReturnRows(closedRoom)
	mock.ExpectRollback()

	_, err := svc.CreateBooking(validInput(t))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateBookingValidationBeforeDB(t *testing.T) {
	// none of these may touch the database
	svc, mock, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	cases := []struct {
		name   string
		mutate func(*models.BookingInput)
	}{
		{"unknown room type", func(in *models.BookingInput) { in.RoomType = "penthouse" }},
		{"bad email", func(in *models.BookingInput) { in.Email = "not-an-email" }},
		{"inverted dates", func(in *models.BookingInput) {
			in.CheckInDate, in.CheckOutDate = in.CheckOutDate, in.CheckInDate
		}},
		{"zero nights", func(in *models.BookingInput) { in.CheckOutDate = in.CheckInDate }},
		{"past check-in", func(in *models.BookingInput) {
			in.CheckInDate = day(t, "2026-05-01")
		}},
		{"zero guests", func(in *models.BookingInput) { in.NumberOfGuests = 0 }},
		{"bad initial status", func(in *models.BookingInput) { in.InitialStatus = models.StatusCancelled }},
	}
	for _, c := range cases {
		input := validInput(t)
		c.mutate(&input)
		if _, err := svc.CreateBooking(input); !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", c.name, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreateBookingMissingFields(t *testing.T) {
	svc, _, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	_, err := svc.CreateBooking(models.BookingInput{})
	var ve domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := []string{"guestName", "email", "roomType", "checkInDate", "checkOutDate", "numberOfGuests"}
	if len(ve.Fields) != len(want) {
		t.Fatalf("missing fields = %v, want %v", ve.Fields, want)
	}
	for i, f := range want {
		if ve.Fields[i] != f {
			t.Fatalf("missing fields = %v, want %v", ve.Fields, want)
		}
	}
}

func transitionRow(t *testing.T, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "reference_code", "guest_name", "email", "phone", "room_type",
		"check_in_date", "check_out_date", "number_of_guests", "rooms_booked", "status",
		"total_price", "deposit_amount", "remaining_amount", "special_requests", "source", "created_at",
	}).AddRow(
		5, "BK-ABCD1234", "Arben Hoxha", "arben@example.com", "", "Standard",
		day(t, "2026-08-15"), day(t, "2026-08-17"), 2, 1, status,
		10000, 5000, 5000, "", "Website", time.Now(),
	)
}

func TestTransitionConfirm(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).WillReturnRows(transitionRow(t, "pending"))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("confirmed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := svc.Transition(5, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if b.Status != models.StatusConfirmed {
		t.Fatalf("status = %s", b.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTransitionIllegal(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	// cancelled is terminal; no UPDATE may be issued
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).WillReturnRows(transitionRow(t, "cancelled"))

	_, err := svc.Transition(5, models.StatusConfirmed)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCancelAfterCheckoutRejected(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-09-01")
	defer closeDB()

	// stored confirmed, but the stay checked out 2026-08-17: clients
	// already see it as completed, and completed is terminal
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).WillReturnRows(transitionRow(t, "confirmed"))

	_, err := svc.Cancel(5)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTransitionMaterializesCompleted(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-09-01")
	defer closeDB()

	// persisting the derived completed state is the one allowed write on
	// a stay past its check-out
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).WillReturnRows(transitionRow(t, "confirmed"))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("completed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := svc.Transition(5, models.StatusCompleted)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if b.Status != models.StatusCompleted {
		t.Fatalf("status = %s", b.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc, _, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	if _, err := svc.Transition(5, "teleported"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCancelIsSoftDelete(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-06-01")
	defer closeDB()

	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).WillReturnRows(transitionRow(t, "pending"))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("cancelled", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := svc.Cancel(5)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.Status != models.StatusCancelled {
		t.Fatalf("status = %s", b.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetDerivesCompleted(t *testing.T) {
	svc, mock, closeDB := bookingServiceAt(t, "2026-09-01")
	defer closeDB()

	// stay checked out 2026-08-17, read on 2026-09-01
	mock.ExpectQuery("FROM bookings WHERE id").WithArgs(int64(5)).WillReturnRows(transitionRow(t, "confirmed"))

	b, err := svc.Get(5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want completed", b.Status)
	}
}
