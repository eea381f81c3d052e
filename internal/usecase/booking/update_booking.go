package booking

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/slotcal/slotcal-api/internal/audit"
	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateBookingInput is a partial patch: nil fields keep their prior value.
type UpdateBookingInput struct {
	ID       string
	CallerID string

	Title        *string
	DurationMin  *int
	Type         *string
	Location     *string
	Availability *string
	Start        *string
	End          *string

	AttendeeName  *string
	AttendeeEmail *string
	Notes         *string

	Status *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBooking {
	return &UpdateBooking{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}

	if b.HostID != in.CallerID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	intervalTouched := false

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, httperr.ErrBusiness("validation_error")
		}
		b.Title = title
	}
	if in.DurationMin != nil {
		if *in.DurationMin <= 0 {
			return nil, httperr.ErrBusiness("validation_error")
		}
		b.DurationMin = *in.DurationMin
	}
	if in.Type != nil {
		if !domain.IsValidType(domain.Type(*in.Type)) {
			return nil, httperr.ErrBusiness("validation_error")
		}
		b.Type = *in.Type
	}
	if in.Location != nil {
		b.Location = *in.Location
	}
	if in.Availability != nil {
		b.Availability = *in.Availability
	}
	if in.AttendeeName != nil {
		b.AttendeeName = *in.AttendeeName
	}
	if in.AttendeeEmail != nil {
		b.AttendeeEmail = *in.AttendeeEmail
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}

	if in.Start != nil {
		start, err := domain.ParseInstant(*in.Start)
		if err != nil {
			return nil, err
		}
		b.Start = start
		intervalTouched = true
	}
	if in.End != nil {
		end, err := domain.ParseInstant(*in.End)
		if err != nil {
			return nil, err
		}
		b.End = end
		intervalTouched = true
	}

	if in.Status != nil {
		if !domain.IsValidStatus(domain.Status(*in.Status)) {
			return nil, httperr.ErrBusiness("validation_error")
		}
		// Cancelled is terminal; reviving by patch is not a thing.
		if b.Status == string(domain.StatusCancelled) &&
			*in.Status != string(domain.StatusCancelled) {
			return nil, httperr.ErrBusiness("invalid_state")
		}
		if *in.Status == string(domain.StatusScheduled) &&
			b.Status != string(domain.StatusScheduled) {
			// Newly occupying time, so the interval needs a conflict check.
			intervalTouched = true
		}
		b.Status = *in.Status
	}

	if err := domain.Validate(b); err != nil {
		return nil, err
	}

	// An interval-touching update re-runs the conflict check against the
	// host's other scheduled bookings, excluding this record itself.
	if intervalTouched && b.Status == string(domain.StatusScheduled) {
		err = uc.repo.SaveRescheduled(ctx, b)
	} else {
		err = uc.repo.UpdateBooking(ctx, b)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		HostID:   b.HostID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: b.ID,
	})

	return b, nil
}
