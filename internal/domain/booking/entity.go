package booking

import (
	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/models"
	"github.com/slotcal/slotcal-api/internal/validators"
)

// ===============================
// Defaults
// ===============================

const (
	DefaultLocation     = "Google Meet"
	DefaultAvailability = "Weekdays, 9 AM - 5 PM"
)

// ApplyDefaults fills in the platform defaults on a freshly built record.
// Called explicitly before every create; there are no persistence hooks.
func ApplyDefaults(b *models.Booking) {
	if b.Location == "" {
		b.Location = DefaultLocation
	}
	if b.Availability == "" {
		b.Availability = DefaultAvailability
	}
	if b.MaxParticipants <= 0 {
		b.MaxParticipants = 1
	}
	if b.Status == "" {
		b.Status = string(InitialStatus())
	}
}

// ===============================
// Validations
// ===============================

// Validate enforces the record invariants checked before any persist:
// end strictly after start, and a mailbox-shaped attendee email when one
// is present.
func Validate(b *models.Booking) error {
	if !b.End.After(b.Start) {
		return httperr.ErrBusiness("invalid_interval")
	}
	if b.AttendeeEmail != "" && !validators.IsEmailShaped(b.AttendeeEmail) {
		return httperr.ErrBusiness("invalid_email")
	}
	return nil
}
