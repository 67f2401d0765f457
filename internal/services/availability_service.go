package services

import (
	"database/sql"
	"time"

	intconfig "hotel-backend/internal/config"
	"hotel-backend/internal/domain"
	"hotel-backend/internal/domain/models"
	"hotel-backend/internal/repositories"
	"hotel-backend/internal/utils"
)

// AvailabilityReport is the per-room-type answer to "how many units are
// free for these dates".
type AvailabilityReport struct {
	RoomType       string `json:"roomType"`
	DisplayName    string `json:"displayName"`
	TotalRooms     int    `json:"totalRooms"`
	BookedRooms    int    `json:"bookedRooms"`
	AvailableRooms int    `json:"availableRooms"`
}

// AvailabilityService counts overlapping occupancy per room type.
type AvailabilityService struct {
	RoomRepo    repositories.RoomRepository
	BookingRepo repositories.BookingRepository
	DB          *sql.DB
}

func (s AvailabilityService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AvailabilityService) rooms() repositories.RoomRepository {
	if s.RoomRepo.DB != nil {
		return s.RoomRepo
	}
	return repositories.RoomRepository{DB: s.db()}
}

func (s AvailabilityService) bookings() repositories.BookingRepository {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepository{DB: s.db()}
}

// ValidateStayDates rejects zero, inverted, and zero-night ranges.
func ValidateStayDates(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return domain.ValidationError{Field: "dates", Msg: "check-in and check-out dates are required"}
	}
	if !utils.DateOnly(checkOut).After(utils.DateOnly(checkIn)) {
		return domain.ValidationError{Field: "dates", Msg: "check-out must be after check-in"}
	}
	return nil
}

// Check answers availability for one room type over [checkIn, checkOut).
// The roomType argument may be an alias; excludeID > 0 removes one
// booking from the count.
func (s AvailabilityService) Check(checkIn, checkOut time.Time, roomType string, excludeID int64) (AvailabilityReport, error) {
	if err := ValidateStayDates(checkIn, checkOut); err != nil {
		return AvailabilityReport{}, err
	}
	code, ok := models.NormalizeRoomCode(roomType)
	if !ok {
		return AvailabilityReport{}, domain.ValidationError{Field: "roomType", Msg: "unknown room type"}
	}
	rt, err := s.rooms().GetByCode(code)
	if err != nil {
		return AvailabilityReport{}, err
	}
	return s.reportFor(rt, checkIn, checkOut, excludeID)
}

// CheckAll reports every active room type for the date range.
func (s AvailabilityService) CheckAll(checkIn, checkOut time.Time) ([]AvailabilityReport, error) {
	if err := ValidateStayDates(checkIn, checkOut); err != nil {
		return nil, err
	}
	types, err := s.rooms().ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]AvailabilityReport, 0, len(types))
	for _, rt := range types {
		report, err := s.reportFor(rt, checkIn, checkOut, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	return out, nil
}

func (s AvailabilityService) reportFor(rt models.RoomType, checkIn, checkOut time.Time, excludeID int64) (AvailabilityReport, error) {
	booked, err := s.bookings().CountOccupied(s.db(), rt.Code, checkIn, checkOut, excludeID)
	if err != nil {
		return AvailabilityReport{}, err
	}
	available := rt.TotalRooms - booked
	if available < 0 {
		available = 0
	}
	return AvailabilityReport{
		RoomType:       rt.Code,
		DisplayName:    rt.DisplayName,
		TotalRooms:     rt.TotalRooms,
		BookedRooms:    booked,
		AvailableRooms: available,
	}, nil
}
