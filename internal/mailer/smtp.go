package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slotcal/slotcal-api/internal/models"
)

// SMTPSender sends plain-text confirmations with an attached calendar
// event via unauthenticated SMTP (Mailpit-compatible).
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host string, port string, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@slotcal.app"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

func (s *SMTPSender) SendBookingConfirmation(
	ctx context.Context,
	b *models.Booking,
	attendee Attendee,
) (string, error) {

	deliveryID := uuid.NewString()
	subject := fmt.Sprintf("Meeting Scheduled: %s", b.Title)
	body := confirmationBody(b, attendee)

	recipients := []string{attendee.Email}
	if b.Host.Email != "" && !strings.EqualFold(b.Host.Email, attendee.Email) {
		recipients = append(recipients, b.Host.Email)
	}

	for _, to := range recipients {
		msg := buildMessage(s.from, to, subject, body, icsEvent(b, attendee))
		if err := smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg)); err != nil {
			return "", err
		}
	}

	return deliveryID, nil
}

func confirmationBody(b *models.Booking, attendee Attendee) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "A new event has been scheduled.\r\n\r\n")
	fmt.Fprintf(&sb, "Event: %s\r\n", b.Title)
	fmt.Fprintf(&sb, "Date: %s\r\n", b.Start.Format("Monday, January 2, 2006"))
	fmt.Fprintf(&sb, "Time: %s - %s\r\n", b.Start.Format("3:04 PM"), b.End.Format("3:04 PM"))
	fmt.Fprintf(&sb, "Location: %s\r\n", b.Location)
	fmt.Fprintf(&sb, "Attendee: %s <%s>\r\n\r\n", attendee.Name, attendee.Email)
	fmt.Fprintf(&sb, "Add to calendar: %s\r\n\r\n", googleCalendarLink(b, attendee))
	fmt.Fprintf(&sb, "This is an automated message. Please do not reply to this email.\r\n")
	return sb.String()
}

func googleCalendarLink(b *models.Booking, attendee Attendee) string {
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", b.Title)
	params.Set("dates", fmt.Sprintf("%s/%s", calTime(b.Start), calTime(b.End)))
	params.Set("details", fmt.Sprintf("Meeting with %s", attendee.Name))
	params.Set("location", b.Location)
	return "https://calendar.google.com/calendar/render?" + params.Encode()
}

func calTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func icsEvent(b *models.Booking, attendee Attendee) string {
	return strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"DTSTART:" + calTime(b.Start),
		"DTEND:" + calTime(b.End),
		"SUMMARY:" + b.Title,
		"DESCRIPTION:Meeting with " + attendee.Name,
		"LOCATION:" + b.Location,
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")
}

const mimeBoundary = "slotcal-confirmation"

func buildMessage(from, to, subject, body, ics string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	fmt.Fprintf(&sb, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&sb, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mimeBoundary)

	fmt.Fprintf(&sb, "--%s\r\n", mimeBoundary)
	fmt.Fprintf(&sb, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body)
	fmt.Fprintf(&sb, "\r\n--%s\r\n", mimeBoundary)
	fmt.Fprintf(&sb, "Content-Type: text/calendar; charset=utf-8\r\n")
	fmt.Fprintf(&sb, "Content-Disposition: attachment; filename=event.ics\r\n\r\n")
	sb.WriteString(ics)
	fmt.Fprintf(&sb, "\r\n--%s--\r\n", mimeBoundary)

	return sb.String()
}
