package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/slotcal/slotcal-api/internal/audit"
	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/models"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	id string,
	callerID string,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}

	if b.HostID != callerID {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if err := domain.CanCancel(domain.Status(b.Status)); err != nil {
		return nil, err
	}

	b.Status = string(domain.StatusCancelled)

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		HostID:   b.HostID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: b.ID,
	})

	return b, nil
}
