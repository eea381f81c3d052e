package booking

import (
	"context"
	"time"

	"github.com/slotcal/slotcal-api/internal/models"
)

type Repository interface {
	// -------- Host --------

	// FindUserByEmailPrefix resolves the public-URL username segment
	// against the local part of a stored email, case-insensitively.
	FindUserByEmailPrefix(
		ctx context.Context,
		username string,
	) (*models.User, error)

	// -------- Booking (read) --------
	GetBookingByID(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	ListBookingsForHost(
		ctx context.Context,
		hostID string,
	) ([]models.Booking, error)

	FindBookingByHostAndTitle(
		ctx context.Context,
		hostID string,
		title string,
	) (*models.Booking, error)

	// -------- Booking (write) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Conflict / claim --------

	// FindConflict returns any scheduled booking for the host whose
	// interval overlaps [start, end), skipping excludeID when non-empty.
	// nil, nil means the slot is free.
	FindConflict(
		ctx context.Context,
		hostID string,
		start time.Time,
		end time.Time,
		excludeID string,
	) (*models.Booking, error)

	// CreateScheduled runs the conflict check and the insert as one
	// transaction, holding the host's scheduled rows under lock.
	// Returns slot_unavailable when another booking occupies the slot.
	CreateScheduled(
		ctx context.Context,
		b *models.Booking,
	) error

	// SaveRescheduled re-runs the conflict check (excluding the record
	// itself) and persists the new interval, same locking scope as
	// CreateScheduled.
	SaveRescheduled(
		ctx context.Context,
		b *models.Booking,
	) error
}
