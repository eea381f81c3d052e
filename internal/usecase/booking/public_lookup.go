package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/models"
)

type PublicLookup struct {
	repo domain.Repository
}

func NewPublicLookup(repo domain.Repository) *PublicLookup {
	return &PublicLookup{repo: repo}
}

// Execute resolves /:username/:slug to a booking: the username segment
// matches the local part of a host's email, the slug maps back to the
// stored title (hyphens to spaces), both case-insensitive. The only
// unauthenticated read path.
func (uc *PublicLookup) Execute(
	ctx context.Context,
	username string,
	slug string,
) (*models.Booking, error) {

	host, err := uc.repo.FindUserByEmailPrefix(
		ctx,
		domain.NormalizeUsername(username),
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}

	b, err := uc.repo.FindBookingByHostAndTitle(
		ctx,
		host.ID,
		domain.SlugToTitle(slug),
	)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("not_found")
		}
		return nil, err
	}

	return b, nil
}
