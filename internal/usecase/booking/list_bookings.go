package booking

import (
	"context"

	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute returns everything the host owns, most recent start first.
func (uc *ListBookings) Execute(
	ctx context.Context,
	hostID string,
) ([]models.Booking, error) {
	return uc.repo.ListBookingsForHost(ctx, hostID)
}
