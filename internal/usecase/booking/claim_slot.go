package booking

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slotcal/slotcal-api/internal/audit"
	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/mailer"
	"github.com/slotcal/slotcal-api/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ClaimSlotInput struct {
	TemplateID string
	StartTime  string

	AttendeeName  string
	AttendeeEmail string
	Notes         string
}

type ClaimSlotOutput struct {
	Booking *models.Booking
	EmailID string
}

// ======================================================
// USE CASE
// ======================================================

type ClaimSlot struct {
	repo   domain.Repository
	sender mailer.Sender
	audit  *audit.Dispatcher
}

func NewClaimSlot(
	repo domain.Repository,
	sender mailer.Sender,
	audit *audit.Dispatcher,
) *ClaimSlot {
	return &ClaimSlot{
		repo:   repo,
		sender: sender,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute turns a template into a scheduled booking for one attendee.
// The conflict check and the insert run as a single storage transaction;
// confirmation email happens after the commit and never reverses it.
func (uc *ClaimSlot) Execute(
	ctx context.Context,
	in ClaimSlotInput,
) (*ClaimSlotOutput, error) {

	if in.TemplateID == "" || in.StartTime == "" || strings.TrimSpace(in.AttendeeEmail) == "" {
		return nil, httperr.ErrBusiness("validation_error")
	}

	template, err := uc.repo.GetBookingByID(ctx, in.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}

	start, err := domain.ParseInstant(in.StartTime)
	if err != nil {
		return nil, err
	}
	end := domain.ComputeEnd(start, template.DurationMin)

	// A new record, never a mutation of the template. The template stays
	// available for other attendees.
	b := &models.Booking{
		ID:           uuid.NewString(),
		Title:        template.Title,
		DurationMin:  template.DurationMin,
		Type:         template.Type,
		Location:     template.Location,
		Availability: template.Availability,
		HostID:       template.HostID,
		Start:        start,
		End:          end,

		AttendeeName:  in.AttendeeName,
		AttendeeEmail: strings.TrimSpace(in.AttendeeEmail),
		Notes:         in.Notes,

		MaxParticipants: template.MaxParticipants,
		Status:          string(domain.StatusScheduled),
	}

	if err := domain.Validate(b); err != nil {
		return nil, err
	}

	// Fast path: reject an occupied slot before opening the transaction.
	// CreateScheduled re-checks under lock, so a concurrent claim that
	// slips past this read still loses there.
	conflict, err := uc.repo.FindConflict(ctx, template.HostID, start, end, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		uc.dispatchConflict(template.ID, b)
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	if err := uc.repo.CreateScheduled(ctx, b); err != nil {
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.dispatchConflict(template.ID, b)
		}
		return nil, err
	}

	b.Host = template.Host

	attendee := mailer.Attendee{
		Name:  in.AttendeeName,
		Email: b.AttendeeEmail,
	}

	// Fire-and-forget: a delivery failure is logged, the claim already
	// succeeded. The client still gets an id to correlate on.
	emailID, err := uc.sender.SendBookingConfirmation(ctx, b, attendee)
	if err != nil {
		log.Printf("booking %s: confirmation email failed: %v", b.ID, err)
		emailID = mailer.FallbackDeliveryID()
	}

	uc.audit.Dispatch(audit.Event{
		HostID:   b.HostID,
		Action:   "slot_claimed",
		Entity:   "booking",
		EntityID: b.ID,
		Metadata: map[string]any{
			"template_id": template.ID,
			"email_id":    emailID,
		},
	})

	return &ClaimSlotOutput{
		Booking: b,
		EmailID: emailID,
	}, nil
}

func (uc *ClaimSlot) dispatchConflict(templateID string, b *models.Booking) {
	uc.audit.Dispatch(audit.Event{
		HostID: b.HostID,
		Action: "claim_conflict",
		Entity: "booking",
		Metadata: map[string]any{
			"template_id": templateID,
			"start":       b.Start,
			"end":         b.End,
		},
	})
}
