package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"hotel-backend/internal/domain/models"
	"hotel-backend/internal/repositories"
	"hotel-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the booking confirmation / invoice PDF the guest
// can download and that reception prints at check-in.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RoomRepo    repositories.RoomRepository
	RequestID   string

	// Loader overrides data fetching in tests.
	Loader func(int64) (models.Booking, models.RoomType, error)
}

func (s DocsService) GenerateConfirmation(bookingID int64) ([]byte, string, error) {
	booking, room, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("booking_id=%d", bookingID))
	return buildConfirmationPDF(booking, room)
}

func (s DocsService) load(bookingID int64) (models.Booking, models.RoomType, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	booking, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return models.Booking{}, models.RoomType{}, err
	}
	room, err := s.RoomRepo.GetByCode(booking.RoomType)
	if err != nil {
		return models.Booking{}, models.RoomType{}, err
	}
	return booking, room, nil
}

func buildConfirmationPDF(b models.Booking, rt models.RoomType) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ALPIN RESORT - BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Reference    : "+safe(b.ReferenceCode, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Guest:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Name         : %s", safe(b.GuestName, "-")),
		fmt.Sprintf("Email        : %s", safe(b.Email, "-")),
		fmt.Sprintf("Phone        : %s", safe(b.Phone, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Stay:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	lines = []string{
		fmt.Sprintf("Room         : %s (%s) x%d", safe(rt.DisplayName, b.RoomType), safe(rt.LocalizedName, "-"), b.RoomsBooked),
		fmt.Sprintf("Check-in     : %s", utils.FormatDate(b.CheckInDate)),
		fmt.Sprintf("Check-out    : %s", utils.FormatDate(b.CheckOutDate)),
		fmt.Sprintf("Nights       : %d", utils.NightsBetween(b.CheckInDate, b.CheckOutDate)),
		fmt.Sprintf("Guests       : %d", b.NumberOfGuests),
		fmt.Sprintf("Status       : %s", b.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Payment:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Total        : "+utils.FormatLek(b.TotalPrice))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Deposit paid : "+utils.FormatLek(b.DepositAmount))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Due at hotel : "+utils.FormatLek(b.RemainingAmount))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Check-in from 14:00, check-out until 11:00. Please present this confirmation at reception.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("CONFIRMATION_%s.pdf", safeFilenamePart(b.ReferenceCode))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
