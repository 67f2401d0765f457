package repositories

import (
	"database/sql"
	"errors"

	intconfig "hotel-backend/internal/config"
	"hotel-backend/internal/domain"
	"hotel-backend/internal/domain/models"
)

// RoomRepository reads the room catalog. Booking operations treat it as
// read-only; the catalog is seeded at schema bootstrap.
type RoomRepository struct {
	DB *sql.DB
}

func (r RoomRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const roomColumns = `code, display_name, localized_name, total_rooms, min_guests, max_guests, price_per_night, is_active`

func scanRoomType(row *sql.Row) (models.RoomType, error) {
	var rt models.RoomType
	err := row.Scan(&rt.Code, &rt.DisplayName, &rt.LocalizedName, &rt.TotalRooms, &rt.MinGuests, &rt.MaxGuests, &rt.PricePerNight, &rt.IsActive)
	return rt, err
}

// GetByCode returns the room type for a canonical code, active or not.
func (r RoomRepository) GetByCode(code string) (models.RoomType, error) {
	row := r.db().QueryRow(`SELECT `+roomColumns+` FROM room_types WHERE code = ? LIMIT 1`, code)
	rt, err := scanRoomType(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoomType{}, domain.NotFoundError{Resource: "room type"}
		}
		return models.RoomType{}, domain.InternalError{Err: err}
	}
	return rt, nil
}

// ListActive returns room types open for new bookings, cheapest first.
func (r RoomRepository) ListActive() ([]models.RoomType, error) {
	rows, err := r.db().Query(`SELECT ` + roomColumns + ` FROM room_types WHERE is_active = 1 ORDER BY price_per_night ASC`)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []models.RoomType
	for rows.Next() {
		var rt models.RoomType
		if err := rows.Scan(&rt.Code, &rt.DisplayName, &rt.LocalizedName, &rt.TotalRooms, &rt.MinGuests, &rt.MaxGuests, &rt.PricePerNight, &rt.IsActive); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
