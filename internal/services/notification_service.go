package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"hotel-backend/internal/config"
	"hotel-backend/internal/domain/models"
	"hotel-backend/internal/utils"
)

// Notifier is the outbound notification port. Implementations may fail
// independently of booking persistence; callers treat delivery as
// best-effort.
type Notifier interface {
	SendBookingConfirmation(b models.Booking) error
	SendAdminAlert(b models.Booking) error
}

// EmailNotifier delivers plain-text mails over SMTP.
type EmailNotifier struct {
	Host       string
	Port       string
	User       string
	Pass       string
	From       string
	AdminEmail string
}

// NewEmailNotifier returns nil when SMTP is not configured, which
// disables notifications without special-casing at call sites.
func NewEmailNotifier(env config.Env) Notifier {
	if env.SMTPHost == "" {
		return nil
	}
	return EmailNotifier{
		Host:       env.SMTPHost,
		Port:       env.SMTPPort,
		User:       env.SMTPUser,
		Pass:       env.SMTPPass,
		From:       env.MailFrom,
		AdminEmail: env.AdminEmail,
	}
}

func (n EmailNotifier) SendBookingConfirmation(b models.Booking) error {
	subject := fmt.Sprintf("Alpin Resort booking %s confirmed", b.ReferenceCode)
	body := strings.Join([]string{
		fmt.Sprintf("Dear %s,", b.GuestName),
		"",
		"Thank you for booking with Alpin Resort. Your reservation details:",
		"",
		fmt.Sprintf("Reference:  %s", b.ReferenceCode),
		fmt.Sprintf("Room:       %s x%d", b.RoomType, b.RoomsBooked),
		fmt.Sprintf("Check-in:   %s", utils.FormatDate(b.CheckInDate)),
		fmt.Sprintf("Check-out:  %s", utils.FormatDate(b.CheckOutDate)),
		fmt.Sprintf("Guests:     %d", b.NumberOfGuests),
		fmt.Sprintf("Total:      %s", utils.FormatLek(b.TotalPrice)),
		fmt.Sprintf("Deposit:    %s", utils.FormatLek(b.DepositAmount)),
		fmt.Sprintf("Due later:  %s", utils.FormatLek(b.RemainingAmount)),
		"",
		"We look forward to welcoming you.",
	}, "\r\n")
	return n.send(b.Email, subject, body)
}

func (n EmailNotifier) SendAdminAlert(b models.Booking) error {
	if n.AdminEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("New booking %s (%s)", b.ReferenceCode, b.Source)
	body := fmt.Sprintf(
		"New booking #%d: %s, %s, %s -> %s, %d guests, %s room(s) x%d, total %s.",
		b.ID, b.GuestName, b.Email,
		utils.FormatDate(b.CheckInDate), utils.FormatDate(b.CheckOutDate),
		b.NumberOfGuests, b.RoomType, b.RoomsBooked, utils.FormatLek(b.TotalPrice),
	)
	return n.send(n.AdminEmail, subject, body)
}

func (n EmailNotifier) send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}
	msg := strings.Join([]string{
		"From: " + n.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := n.Host + ":" + n.Port
	var auth smtp.Auth
	if n.User != "" {
		auth = smtp.PlainAuth("", n.User, n.Pass, n.Host)
	}
	return smtp.SendMail(addr, auth, n.From, []string{to}, []byte(msg))
}
