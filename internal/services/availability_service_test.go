package services

import (
	"testing"
	"time"

	"hotel-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestValidateStayDates(t *testing.T) {
	in := day(t, "2025-08-15")
	out := day(t, "2025-08-17")

	if err := ValidateStayDates(in, out); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if err := ValidateStayDates(time.Time{}, out); !domain.IsValidation(err) {
		t.Fatalf("zero check-in accepted: %v", err)
	}
	if err := ValidateStayDates(in, time.Time{}); !domain.IsValidation(err) {
		t.Fatalf("zero check-out accepted: %v", err)
	}
	if err := ValidateStayDates(out, in); !domain.IsValidation(err) {
		t.Fatalf("inverted range accepted: %v", err)
	}
	if err := ValidateStayDates(in, in); !domain.IsValidation(err) {
		t.Fatalf("zero-night range accepted: %v", err)
	}
}

func TestAvailabilityCheck(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	checkIn := day(t, "2025-08-15")
	checkOut := day(t, "2025-08-17")

	mock.ExpectQuery("FROM room_types WHERE code").
		WithArgs("Standard").
		WillReturnRows(standardRoomRow())
	mock.ExpectQuery(`SUM\(rooms_booked\)`).
		WithArgs("Standard", checkOut, checkIn).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(3))

	svc := AvailabilityService{DB: db}
	// alias in, canonical code out
	report, err := svc.Check(checkIn, checkOut, "standard room", 0)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.RoomType != "Standard" || report.TotalRooms != 5 || report.BookedRooms != 3 || report.AvailableRooms != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAvailabilityFloorsAtZero(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM room_types WHERE code").
		WithArgs("Standard").
		WillReturnRows(standardRoomRow())
	mock.ExpectQuery(`SUM\(rooms_booked\)`).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(7))

	svc := AvailabilityService{DB: db}
	report, err := svc.Check(day(t, "2025-08-15"), day(t, "2025-08-17"), "Standard", 0)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.AvailableRooms != 0 {
		t.Fatalf("available = %d, want 0", report.AvailableRooms)
	}
}

func TestAvailabilityCheckAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM room_types WHERE is_active").
		WillReturnRows(sqlmock.NewRows([]string{
			"code", "display_name", "localized_name", "total_rooms", "min_guests", "max_guests", "price_per_night", "is_active",
		}).
			AddRow("Standard", "Standard Mountain Room", "Dhomë Standarde", 5, 1, 2, 5000, true).
			AddRow("Deluxe", "Deluxe Mountain View", "Dhomë Deluxe", 3, 1, 3, 8000, true))
	mock.ExpectQuery(`SUM\(rooms_booked\)`).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(5))
	mock.ExpectQuery(`SUM\(rooms_booked\)`).
		WillReturnRows(sqlmock.NewRows([]string{"occupied"}).AddRow(0))

	svc := AvailabilityService{DB: db}
	reports, err := svc.CheckAll(day(t, "2025-08-15"), day(t, "2025-08-17"))
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports", len(reports))
	}
	if reports[0].RoomType != "Standard" || reports[0].AvailableRooms != 0 {
		t.Fatalf("unexpected first report: %+v", reports[0])
	}
	if reports[1].RoomType != "Deluxe" || reports[1].AvailableRooms != 3 {
		t.Fatalf("unexpected second report: %+v", reports[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAvailabilityCheckRejectsBadInput(t *testing.T) {
	svc := AvailabilityService{}
	in := day(t, "2025-08-15")
	out := day(t, "2025-08-17")

	if _, err := svc.Check(out, in, "Standard", 0); !domain.IsValidation(err) {
		t.Fatalf("inverted dates accepted: %v", err)
	}
	if _, err := svc.Check(in, out, "igloo", 0); !domain.IsValidation(err) {
		t.Fatalf("unknown room type accepted: %v", err)
	}
}
