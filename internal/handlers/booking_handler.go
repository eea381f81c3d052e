package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/slotcal/slotcal-api/internal/httperr"
	"github.com/slotcal/slotcal-api/internal/httpresp"
	"github.com/slotcal/slotcal-api/internal/middleware"
	ucBooking "github.com/slotcal/slotcal-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createTemplate *ucBooking.CreateTemplate
	listBookings   *ucBooking.ListBookings
	getBooking     *ucBooking.GetBooking
	updateBooking  *ucBooking.UpdateBooking
	cancelBooking  *ucBooking.CancelBooking
	deleteBooking  *ucBooking.DeleteBooking

	cache PageCache
}

func NewBookingHandler(
	createTemplate *ucBooking.CreateTemplate,
	listBookings *ucBooking.ListBookings,
	getBooking *ucBooking.GetBooking,
	updateBooking *ucBooking.UpdateBooking,
	cancelBooking *ucBooking.CancelBooking,
	deleteBooking *ucBooking.DeleteBooking,
	cache PageCache,
) *BookingHandler {
	return &BookingHandler{
		createTemplate: createTemplate,
		listBookings:   listBookings,
		getBooking:     getBooking,
		updateBooking:  updateBooking,
		cancelBooking:  cancelBooking,
		deleteBooking:  deleteBooking,
		cache:          cache,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	Title        string `json:"title" binding:"required"`
	Duration     int    `json:"duration" binding:"required"`
	Type         string `json:"type" binding:"required"`
	Location     string `json:"location"`
	Availability string `json:"availability"`
	Start        string `json:"start" binding:"required"`
	End          string `json:"end" binding:"required"`
}

type UpdateBookingRequest struct {
	Title        *string `json:"title"`
	Duration     *int    `json:"duration"`
	Type         *string `json:"type"`
	Location     *string `json:"location"`
	Availability *string `json:"availability"`
	Start        *string `json:"start"`
	End          *string `json:"end"`

	AttendeeName  *string `json:"attendee_name"`
	AttendeeEmail *string `json:"attendee_email"`
	Notes         *string `json:"notes"`

	Status *string `json:"status"`
}

// ======================================================
// HELPERS
// ======================================================

// invalidatePublicCache drops the host's cached public pages after any
// mutation; the username segment is the local part of the caller's email.
func (h *BookingHandler) invalidatePublicCache(c *gin.Context) {
	email, _ := c.MustGet(middleware.ContextUserEmail).(string)
	if at := strings.Index(email, "@"); at > 0 {
		h.cache.InvalidateHost(c.Request.Context(), email[:at])
	}
}

// ======================================================
// CREATE (template)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Missing or malformed fields.")
		return
	}

	b, err := h.createTemplate.Execute(c.Request.Context(), ucBooking.CreateTemplateInput{
		HostID:       hostID,
		Title:        req.Title,
		DurationMin:  req.Duration,
		Type:         req.Type,
		Location:     req.Location,
		Availability: req.Availability,
		Start:        req.Start,
		End:          req.End,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.invalidatePublicCache(c)
	httpresp.Created(c, b)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(string)

	bookings, err := h.listBookings.Execute(c.Request.Context(), hostID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.getBooking.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// UPDATE / CANCEL / DELETE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(string)

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Malformed patch.")
		return
	}

	b, err := h.updateBooking.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		ID:       c.Param("id"),
		CallerID: callerID,

		Title:        req.Title,
		DurationMin:  req.Duration,
		Type:         req.Type,
		Location:     req.Location,
		Availability: req.Availability,
		Start:        req.Start,
		End:          req.End,

		AttendeeName:  req.AttendeeName,
		AttendeeEmail: req.AttendeeEmail,
		Notes:         req.Notes,

		Status: req.Status,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.invalidatePublicCache(c)
	httpresp.OK(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(string)

	b, err := h.cancelBooking.Execute(c.Request.Context(), c.Param("id"), callerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	h.invalidatePublicCache(c)
	httpresp.OK(c, b)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(string)

	if err := h.deleteBooking.Execute(c.Request.Context(), c.Param("id"), callerID); err != nil {
		writeDomainError(c, err)
		return
	}

	h.invalidatePublicCache(c)
	httpresp.OK(c, gin.H{"message": "Booking deleted successfully"})
}
