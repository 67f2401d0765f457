// Package db holds schema bootstrap and small introspection helpers
// shared by the repositories.
package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"hotel-backend/internal/domain/models"
)

type QueryRower interface {
	QueryRow(query string, args ...any) *sql.Row
}

func HasTable(q QueryRower, table string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(q QueryRower, table, column string) bool {
	var name sql.NullString
	err := q.QueryRow(`
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)

	if err != nil {
		if errors.Is(err, driver.ErrBadConn) {
			return false
		}
		return false
	}
	return name.Valid && name.String != ""
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const roomTypesDDL = `
CREATE TABLE IF NOT EXISTS room_types (
	code VARCHAR(50) PRIMARY KEY,
	display_name VARCHAR(255) NOT NULL,
	localized_name VARCHAR(255) NOT NULL DEFAULT '',
	total_rooms INT NOT NULL,
	min_guests INT NOT NULL DEFAULT 1,
	max_guests INT NOT NULL,
	price_per_night BIGINT NOT NULL,
	is_active TINYINT(1) NOT NULL DEFAULT 1
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const bookingsDDL = `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	reference_code VARCHAR(64) NOT NULL,
	guest_name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL DEFAULT '',
	room_type VARCHAR(50) NOT NULL,
	check_in_date DATE NOT NULL,
	check_out_date DATE NOT NULL,
	number_of_guests INT NOT NULL,
	rooms_booked INT NOT NULL DEFAULT 1,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	total_price BIGINT NOT NULL,
	deposit_amount BIGINT NOT NULL,
	remaining_amount BIGINT NOT NULL,
	special_requests TEXT,
	source VARCHAR(20) NOT NULL DEFAULT 'Website',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_reference (reference_code),
	KEY idx_room_dates (room_type, check_in_date, check_out_date),
	KEY idx_status (status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

const usersDDL = `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'admin',
	status VARCHAR(50) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`

// EnsureSchema creates missing tables and seeds the room catalog once.
func EnsureSchema(database *sql.DB) error {
	if database == nil {
		return fmt.Errorf("db not available")
	}
	for _, ddl := range []string{roomTypesDDL, bookingsDDL, usersDDL} {
		if _, err := database.Exec(ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	if err := migrateColumns(database); err != nil {
		return err
	}
	return seedRoomTypes(database)
}

// migrateColumns adds columns introduced after the first release, so
// existing databases upgrade in place.
func migrateColumns(database *sql.DB) error {
	alters := []struct {
		table, column, ddl string
	}{
		{"room_types", "localized_name",
			`ALTER TABLE room_types ADD COLUMN localized_name VARCHAR(255) NOT NULL DEFAULT '' AFTER display_name`},
		{"bookings", "rooms_booked",
			`ALTER TABLE bookings ADD COLUMN rooms_booked INT NOT NULL DEFAULT 1 AFTER number_of_guests`},
		{"bookings", "source",
			`ALTER TABLE bookings ADD COLUMN source VARCHAR(20) NOT NULL DEFAULT 'Website' AFTER special_requests`},
	}
	for _, a := range alters {
		if !HasTable(database, a.table) || HasColumn(database, a.table, a.column) {
			continue
		}
		if _, err := database.Exec(a.ddl); err != nil {
			return fmt.Errorf("add column %s.%s: %w", a.table, a.column, err)
		}
	}
	return nil
}

func seedRoomTypes(database *sql.DB) error {
	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM room_types`).Scan(&count); err != nil {
		return fmt.Errorf("count room_types: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, rt := range models.SeedRoomTypes() {
		_, err := database.Exec(`
			INSERT INTO room_types (code, display_name, localized_name, total_rooms, min_guests, max_guests, price_per_night, is_active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, rt.Code, rt.DisplayName, rt.LocalizedName, rt.TotalRooms, rt.MinGuests, rt.MaxGuests, rt.PricePerNight, rt.IsActive)
		if err != nil {
			return fmt.Errorf("seed room type %s: %w", rt.Code, err)
		}
	}
	return nil
}
