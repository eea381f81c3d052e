package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/slotcal/slotcal-api/internal/audit"
	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
	"github.com/slotcal/slotcal-api/internal/middleware"
	"github.com/slotcal/slotcal-api/internal/models"
	ucBooking "github.com/slotcal/slotcal-api/internal/usecase/booking"
)

// fakePageCache mirrors the redis cache's key normalization so
// case-variant URLs share one entry and host-wide invalidation finds
// every variant.
type fakePageCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakePageCache() *fakePageCache {
	return &fakePageCache{entries: map[string][]byte{}}
}

func (f *fakePageCache) key(username, slug string) string {
	return fmt.Sprintf("public:%s:%s",
		strings.ToLower(strings.TrimSpace(username)),
		strings.ToLower(slug),
	)
}

func (f *fakePageCache) GetPublicPage(ctx context.Context, username, slug string, out any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.entries[f.key(username, slug)]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (f *fakePageCache) SetPublicPage(ctx context.Context, username, slug string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[f.key(username, slug)] = raw
}

func (f *fakePageCache) InvalidateHost(ctx context.Context, username string) {
	prefix := "public:" + strings.ToLower(strings.TrimSpace(username)) + ":"
	f.mu.Lock()
	defer f.mu.Unlock()
	for k := range f.entries {
		if strings.HasPrefix(k, prefix) {
			delete(f.entries, k)
		}
	}
}

var _ PageCache = (*fakePageCache)(nil)

// pageRepo serves one host with one template and counts public lookups,
// so tests can tell a cache hit from a database round trip.
type pageRepo struct {
	mu       sync.Mutex
	host     models.User
	template *models.Booking
	lookups  int
}

func (r *pageRepo) FindUserByEmailPrefix(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if strings.HasPrefix(strings.ToLower(r.host.Email), username+"@") {
		cp := r.host
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *pageRepo) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.template != nil && r.template.ID == id {
		cp := *r.template
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *pageRepo) ListBookingsForHost(ctx context.Context, hostID string) ([]models.Booking, error) {
	return nil, nil
}

func (r *pageRepo) FindBookingByHostAndTitle(ctx context.Context, hostID string, title string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.template != nil && r.template.HostID == hostID && strings.EqualFold(r.template.Title, title) {
		cp := *r.template
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *pageRepo) CreateBooking(ctx context.Context, b *models.Booking) error { return nil }
func (r *pageRepo) UpdateBooking(ctx context.Context, b *models.Booking) error { return nil }

func (r *pageRepo) DeleteBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.template != nil && r.template.ID == b.ID {
		r.template = nil
	}
	return nil
}

func (r *pageRepo) FindConflict(ctx context.Context, hostID string, start, end time.Time, excludeID string) (*models.Booking, error) {
	return nil, nil
}

func (r *pageRepo) CreateScheduled(ctx context.Context, b *models.Booking) error { return nil }
func (r *pageRepo) SaveRescheduled(ctx context.Context, b *models.Booking) error { return nil }

var _ domain.Repository = (*pageRepo)(nil)

func newPageRepo() *pageRepo {
	host := models.User{ID: "host-1", Name: "John Doe", Email: "jdoe@example.com"}
	return &pageRepo{
		host: host,
		template: &models.Booking{
			ID:          "template-1",
			Title:       "Intro Call",
			DurationMin: 30,
			Type:        "one-on-one",
			HostID:      host.ID,
			Start:       time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
			End:         time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC),
			Status:      "available",
		},
	}
}

func newPublicRouter(repo domain.Repository, pc PageCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	dispatcher := audit.NewDispatcher(audit.New(nil))

	publicHandler := NewPublicHandler(
		ucBooking.NewPublicLookup(repo),
		ucBooking.NewClaimSlot(repo, nil, dispatcher),
		pc,
	)
	bookingHandler := NewBookingHandler(
		ucBooking.NewCreateTemplate(repo, dispatcher),
		ucBooking.NewListBookings(repo),
		ucBooking.NewGetBooking(repo),
		ucBooking.NewUpdateBooking(repo, dispatcher),
		ucBooking.NewCancelBooking(repo, dispatcher),
		ucBooking.NewDeleteBooking(repo, dispatcher),
		pc,
	)

	r := gin.New()
	r.GET("/api/public/:username/:slug", publicHandler.GetBookingPage)

	secured := r.Group("/api")
	secured.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "host-1")
		c.Set(middleware.ContextUserEmail, "jdoe@example.com")
		c.Next()
	})
	secured.DELETE("/me/bookings/:id", bookingHandler.Delete)

	return r
}

func TestGetBookingPageServedFromCache(t *testing.T) {
	repo := newPageRepo()
	pc := newFakePageCache()
	r := newPublicRouter(repo, pc)

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/api/public/jdoe/intro-call", nil))
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, 1, repo.lookups)

	// second hit is answered from the cache, without a repository round trip
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/public/jdoe/intro-call", nil))
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, 1, repo.lookups)
	assert.JSONEq(t, w1.Body.String(), w2.Body.String())
}

func TestPublicCacheInvalidatedOnDelete(t *testing.T) {
	repo := newPageRepo()
	pc := newFakePageCache()
	r := newPublicRouter(repo, pc)

	// prime via a case-variant URL; normalization puts it under the same
	// key the invalidation scan targets
	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/api/public/JDoe/Intro-Call", nil))
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, 1, repo.lookups)

	wDel := httptest.NewRecorder()
	r.ServeHTTP(wDel, httptest.NewRequest(http.MethodDelete, "/api/me/bookings/template-1", nil))
	assert.Equal(t, http.StatusOK, wDel.Code)

	// stale page is gone: the next read goes back to the repository and
	// reflects the deletion
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/public/JDoe/Intro-Call", nil))
	assert.Equal(t, http.StatusNotFound, w2.Code)
	assert.Equal(t, 2, repo.lookups)
}
