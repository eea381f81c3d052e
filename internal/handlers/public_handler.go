package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/models"
	ucBooking "github.com/slotcal/slotcal-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	publicLookup *ucBooking.PublicLookup
	claimSlot    *ucBooking.ClaimSlot
	cache        PageCache
}

func NewPublicHandler(
	publicLookup *ucBooking.PublicLookup,
	claimSlot *ucBooking.ClaimSlot,
	cache PageCache,
) *PublicHandler {
	return &PublicHandler{
		publicLookup: publicLookup,
		claimSlot:    claimSlot,
		cache:        cache,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type ScheduleRequest struct {
	BookingID     string `json:"bookingId" binding:"required"`
	StartTime     string `json:"startTime" binding:"required"`
	AttendeeEmail string `json:"attendeeEmail" binding:"required"`
	AttendeeName  string `json:"attendeeName"`
	Notes         string `json:"notes"`
}

type ScheduleResponse struct {
	models.Booking
	EmailID string `json:"email_id"`
}

////////////////////////////////////////////////////////
// PUBLIC LOOKUP
////////////////////////////////////////////////////////

// GetBookingPage serves /:username/:slug, the unauthenticated template
// view. Responses are cached; a miss or a stale cache falls through to
// the database.
func (h *PublicHandler) GetBookingPage(c *gin.Context) {
	username := c.Param("username")
	slug := c.Param("slug")

	var cached models.Booking
	if h.cache.GetPublicPage(c.Request.Context(), username, slug, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	b, err := h.publicLookup.Execute(c.Request.Context(), username, slug)
	if err != nil {
		if httperr.IsBusiness(err, "not_found") {
			httperr.NotFound(c, "not_found", "Host or booking not found.")
			return
		}
		httperr.Internal(c, "storage_error", "Error fetching booking details.")
		return
	}

	h.cache.SetPublicPage(c.Request.Context(), username, slug, b)
	c.JSON(http.StatusOK, b)
}

////////////////////////////////////////////////////////
// SCHEDULE (claim)
////////////////////////////////////////////////////////

// Schedule is reachable without authentication: the claimer is the
// attendee, not the host.
func (h *PublicHandler) Schedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(
			c,
			"validation_error",
			"Missing required fields: bookingId, startTime and attendeeEmail are required.",
		)
		return
	}

	out, err := h.claimSlot.Execute(c.Request.Context(), ucBooking.ClaimSlotInput{
		TemplateID:    req.BookingID,
		StartTime:     req.StartTime,
		AttendeeName:  req.AttendeeName,
		AttendeeEmail: req.AttendeeEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ScheduleResponse{
		Booking: *out.Booking,
		EmailID: out.EmailID,
	})
}
