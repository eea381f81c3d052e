package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Host
// --------------------------------------------------

// likeEscaper neutralizes LIKE metacharacters in URL-derived input, so a
// username segment of "%" cannot match every email.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *BookingGormRepository) FindUserByEmailPrefix(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) LIKE ?", likeEscaper.Replace(username)+"@%").
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Booking (read)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Host").
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookingsForHost(
	ctx context.Context,
	hostID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Host").
		Where("host_id = ?", hostID).
		Order("start DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) FindBookingByHostAndTitle(
	ctx context.Context,
	hostID string,
	title string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Host").
		Where("host_id = ? AND LOWER(title) = ?", hostID, title).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Booking (write)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Booking{}, "id = ?", b.ID).Error
}

// --------------------------------------------------
// Conflict / claim
// --------------------------------------------------

func (r *BookingGormRepository) FindConflict(
	ctx context.Context,
	hostID string,
	start time.Time,
	end time.Time,
	excludeID string,
) (*models.Booking, error) {
	return findConflict(r.db.WithContext(ctx), hostID, start, end, excludeID)
}

func findConflict(
	tx *gorm.DB,
	hostID string,
	start time.Time,
	end time.Time,
	excludeID string,
) (*models.Booking, error) {

	q := tx.
		Where(
			`host_id = ? AND status = 'scheduled' AND start < ? AND "end" > ?`,
			hostID, end, start,
		)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var conflict models.Booking
	if err := q.First(&conflict).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conflict, nil
}

// CreateScheduled keeps conflict-check-then-insert atomic: the host's
// scheduled rows are read under FOR UPDATE inside one transaction, and the
// bookings exclusion constraint backstops anything that still slips
// through. Either path surfaces as slot_unavailable.
func (r *BookingGormRepository) CreateScheduled(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		conflict, err := findConflict(
			tx.Clauses(clause.Locking{Strength: "UPDATE"}),
			b.HostID, b.Start, b.End, "",
		)
		if err != nil {
			return err
		}
		if conflict != nil {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if err := tx.Create(b).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrBusiness("slot_unavailable")
			}
			return err
		}
		return nil
	})
}

func (r *BookingGormRepository) SaveRescheduled(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		conflict, err := findConflict(
			tx.Clauses(clause.Locking{Strength: "UPDATE"}),
			b.HostID, b.Start, b.End, b.ID,
		)
		if err != nil {
			return err
		}
		if conflict != nil {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if err := tx.Save(b).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrBusiness("slot_unavailable")
			}
			return err
		}
		return nil
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
