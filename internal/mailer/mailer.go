package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/slotcal/slotcal-api/internal/config"
	"github.com/slotcal/slotcal-api/internal/models"
)

type Attendee struct {
	Name  string
	Email string
}

// Sender delivers booking confirmations to the attendee and the host.
// Delivery is best effort; callers must treat a returned error as a soft
// warning, never as a booking failure.
type Sender interface {
	SendBookingConfirmation(ctx context.Context, b *models.Booking, attendee Attendee) (string, error)
}

// New picks the SMTP sender when a host is configured, otherwise a mock
// that logs the message and fabricates a delivery id.
func New(cfg *config.Config) Sender {
	if cfg.SMTPHost != "" {
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	}
	log.Println("SMTP_HOST not set, using mock mailer")
	return NewMockSender()
}

// FallbackDeliveryID gives the claim response something to correlate on
// when delivery failed.
func FallbackDeliveryID() string {
	return fmt.Sprintf("fallback-%s", uuid.NewString())
}
