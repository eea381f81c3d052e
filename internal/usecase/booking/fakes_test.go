package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/slotcal/slotcal-api/internal/audit"
	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/mailer"
	"github.com/slotcal/slotcal-api/internal/models"
)

// ------------------------------------------------------
// in-memory repository
// ------------------------------------------------------

// fakeRepo mirrors the gorm repository's contract, including the
// atomicity of CreateScheduled/SaveRescheduled: the conflict check and
// the write happen under one lock.
type fakeRepo struct {
	mu       sync.Mutex
	users    map[string]*models.User
	bookings map[string]*models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[string]*models.User{},
		bookings: map[string]*models.Booking{},
	}
}

func (r *fakeRepo) addUser(u models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = &u
}

func (r *fakeRepo) addBooking(b models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = &b
}

func (r *fakeRepo) get(id string) *models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		cp := *b
		return &cp
	}
	return nil
}

func (r *fakeRepo) FindUserByEmailPrefix(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.HasPrefix(strings.ToLower(u.Email), username+"@") {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	if u, ok := r.users[cp.HostID]; ok {
		cp.Host = *u
	}
	return &cp, nil
}

func (r *fakeRepo) ListBookingsForHost(ctx context.Context, hostID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.HostID == hostID {
			out = append(out, *b)
		}
	}
	// start DESC, insertion order is irrelevant here
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Start.After(out[i].Start) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) FindBookingByHostAndTitle(ctx context.Context, hostID string, title string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.HostID == hostID && strings.EqualFold(b.Title, title) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) DeleteBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookings, b.ID)
	return nil
}

func (r *fakeRepo) findConflictLocked(hostID string, start, end time.Time, excludeID string) *models.Booking {
	for _, b := range r.bookings {
		if b.HostID != hostID || b.Status != string(domain.StatusScheduled) {
			continue
		}
		if b.ID == excludeID {
			continue
		}
		if domain.Overlaps(b.Start, b.End, start, end) {
			cp := *b
			return &cp
		}
	}
	return nil
}

func (r *fakeRepo) FindConflict(ctx context.Context, hostID string, start, end time.Time, excludeID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findConflictLocked(hostID, start, end, excludeID), nil
}

func (r *fakeRepo) CreateScheduled(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findConflictLocked(b.HostID, b.Start, b.End, "") != nil {
		return httperr.ErrBusiness("slot_unavailable")
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) SaveRescheduled(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findConflictLocked(b.HostID, b.Start, b.End, b.ID) != nil {
		return httperr.ErrBusiness("slot_unavailable")
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------------------------------------------------------
// mailer double
// ------------------------------------------------------

type fakeSender struct {
	mu   sync.Mutex
	sent []string // attendee emails in send order
	fail bool
}

func (s *fakeSender) SendBookingConfirmation(ctx context.Context, b *models.Booking, attendee mailer.Attendee) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errors.New("smtp: connection refused")
	}
	s.sent = append(s.sent, attendee.Email)
	return "delivery-" + attendee.Email, nil
}

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}
