package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/slotcal/slotcal-api/internal/audit"
	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateTemplateInput struct {
	HostID string

	Title       string
	DurationMin int
	Type        string

	Location     string
	Availability string

	Start string
	End   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateTemplate struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateTemplate(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateTemplate {
	return &CreateTemplate{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute creates an offerable template. Templates do not occupy time, so
// there is no conflict check here; that happens when a slot is claimed.
func (uc *CreateTemplate) Execute(
	ctx context.Context,
	in CreateTemplateInput,
) (*models.Booking, error) {

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, httperr.ErrBusiness("validation_error")
	}
	if in.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("validation_error")
	}
	if !domain.IsValidType(domain.Type(in.Type)) {
		return nil, httperr.ErrBusiness("validation_error")
	}

	start, err := domain.ParseInstant(in.Start)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseInstant(in.End)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:           uuid.NewString(),
		Title:        title,
		DurationMin:  in.DurationMin,
		Type:         in.Type,
		Location:     in.Location,
		Availability: in.Availability,
		HostID:       in.HostID,
		Start:        start,
		End:          end,
		Status:       string(domain.StatusAvailable),
	}

	domain.ApplyDefaults(b)

	if err := domain.Validate(b); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		HostID:   in.HostID,
		Action:   "template_created",
		Entity:   "booking",
		EntityID: b.ID,
	})

	return b, nil
}
