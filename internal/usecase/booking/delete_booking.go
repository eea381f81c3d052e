package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/slotcal/slotcal-api/internal/audit"
	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/httperr"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	id string,
	callerID string,
) error {

	b, err := uc.repo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("not_found")
		}
		return err
	}

	if b.HostID != callerID {
		return httperr.ErrBusiness("forbidden")
	}

	if err := uc.repo.DeleteBooking(ctx, b); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		HostID:   b.HostID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: b.ID,
	})

	return nil
}
