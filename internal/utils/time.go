package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// ParseDate parses YYYY-MM-DD as a date-only value in UTC. Keeping all
// stay dates at UTC midnight makes night counts immune to DST shifts.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.UTC)
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// Today returns the current calendar day at UTC midnight.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DateOnly truncates any timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsBetween counts calendar nights in [checkIn, checkOut) using
// date arithmetic, never elapsed durations.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := DateOnly(checkIn)
	out := DateOnly(checkOut)
	return int(out.Sub(in) / (24 * time.Hour))
}
