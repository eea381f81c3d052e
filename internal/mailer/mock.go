package mailer

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/slotcal/slotcal-api/internal/models"
)

// MockSender stands in when no SMTP host is configured. It logs what would
// have been sent and fabricates a delivery id.
type MockSender struct{}

func NewMockSender() *MockSender {
	return &MockSender{}
}

func (m *MockSender) SendBookingConfirmation(
	ctx context.Context,
	b *models.Booking,
	attendee Attendee,
) (string, error) {

	deliveryID := fmt.Sprintf("mock-email-%s", uuid.NewString())
	log.Printf(
		"mock email %s: %q to %s (%s - %s)",
		deliveryID,
		b.Title,
		attendee.Email,
		b.Start.Format("2006-01-02 15:04"),
		b.End.Format("15:04"),
	)
	return deliveryID, nil
}
