package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "hotel-backend/internal/config"
	"hotel-backend/internal/domain"
	"hotel-backend/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// Querier lets repository methods run against either the shared pool or
// an open transaction.
type Querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

// BookingRepository is the sole writer of booking rows.
type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const bookingColumns = `id, reference_code, guest_name, email, phone, room_type,
	check_in_date, check_out_date, number_of_guests, rooms_booked, status,
	total_price, deposit_amount, remaining_amount, COALESCE(special_requests, ''), source, created_at`

func scanBooking(scan func(dest ...any) error) (models.Booking, error) {
	var b models.Booking
	err := scan(
		&b.ID, &b.ReferenceCode, &b.GuestName, &b.Email, &b.Phone, &b.RoomType,
		&b.CheckInDate, &b.CheckOutDate, &b.NumberOfGuests, &b.RoomsBooked, &b.Status,
		&b.TotalPrice, &b.DepositAmount, &b.RemainingAmount, &b.SpecialRequests, &b.Source, &b.CreatedAt,
	)
	return b, err
}

// CountOccupied sums rooms_booked over non-cancelled bookings of the
// given type whose half-open [check_in, check_out) interval intersects
// the query interval. Pass excludeID > 0 to leave one booking out of the
// count (recomputing availability while editing it).
func (r BookingRepository) CountOccupied(q Querier, roomType string, checkIn, checkOut time.Time, excludeID int64) (int, error) {
	if q == nil {
		q = r.db()
	}
	query := `
		SELECT COALESCE(SUM(rooms_booked), 0)
		FROM bookings
		WHERE room_type = ?
		  AND status IN ('pending', 'confirmed')
		  AND check_in_date < ?
		  AND check_out_date > ?`
	args := []any{roomType, checkOut, checkIn}
	if excludeID > 0 {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}

	var occupied int
	if err := q.QueryRow(query, args...).Scan(&occupied); err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return occupied, nil
}

// LockRoomType reads the room type row under FOR UPDATE so concurrent
// creations for the same type serialize on the row lock.
func (r BookingRepository) LockRoomType(tx Querier, code string) (models.RoomType, error) {
	row := tx.QueryRow(`
		SELECT code, display_name, localized_name, total_rooms, min_guests, max_guests, price_per_night, is_active
		FROM room_types
		WHERE code = ?
		FOR UPDATE`, code)

	var rt models.RoomType
	err := row.Scan(&rt.Code, &rt.DisplayName, &rt.LocalizedName, &rt.TotalRooms, &rt.MinGuests, &rt.MaxGuests, &rt.PricePerNight, &rt.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoomType{}, domain.NotFoundError{Resource: "room type"}
		}
		return models.RoomType{}, domain.InternalError{Err: err}
	}
	return rt, nil
}

// Insert persists a new booking and fills in its generated id.
func (r BookingRepository) Insert(q Querier, b *models.Booking) error {
	if q == nil {
		q = r.db()
	}
	res, err := q.Exec(`
		INSERT INTO bookings
			(reference_code, guest_name, email, phone, room_type,
			 check_in_date, check_out_date, number_of_guests, rooms_booked, status,
			 total_price, deposit_amount, remaining_amount, special_requests, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`,
		b.ReferenceCode, b.GuestName, b.Email, b.Phone, b.RoomType,
		b.CheckInDate, b.CheckOutDate, b.NumberOfGuests, b.RoomsBooked, string(b.Status),
		b.TotalPrice, b.DepositAmount, b.RemainingAmount, b.SpecialRequests, b.Source,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return domain.ConflictError{Resource: "booking", Msg: "duplicate reference code", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	b.ID = id
	return nil
}

// GetByID fetches a single booking.
func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "invalid id"}
	}
	row := r.db().QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id = ? LIMIT 1`, id)
	b, err := scanBooking(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// BookingFilter narrows List results. Zero values mean "no filter".
type BookingFilter struct {
	Status   models.BookingStatus
	RoomType string
	FromDate time.Time
	ToDate   time.Time
}

// List returns bookings newest first.
func (r BookingRepository) List(f BookingFilter) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var clauses []string
	var args []any

	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.RoomType != "" {
		clauses = append(clauses, "room_type = ?")
		args = append(args, f.RoomType)
	}
	if !f.FromDate.IsZero() {
		clauses = append(clauses, "check_out_date > ?")
		args = append(args, f.FromDate)
	}
	if !f.ToDate.IsZero() {
		clauses = append(clauses, "check_in_date < ?")
		args = append(args, f.ToDate)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// UpdateStatus writes the new state. Transition legality is the
// service's responsibility.
func (r BookingRepository) UpdateStatus(id int64, status models.BookingStatus) error {
	res, err := r.db().Exec(`UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?`, string(status), id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}
