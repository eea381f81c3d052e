package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/slotcal/slotcal-api/internal/httperr"
)

// writeDomainError maps a use-case error to its HTTP shape. Anything that
// is not a typed business error is an opaque storage fault; internals do
// not leak to the client.
func writeDomainError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "storage_error", "Something went wrong.")
		return
	}

	switch code {
	case "not_found":
		httperr.NotFound(c, code, "Booking not found.")
	case "forbidden":
		httperr.Forbidden(c, code, "Not authorized to modify this booking.")
	case "slot_unavailable":
		httperr.Conflict(c, code, "Selected time slot is not available.")
	case "invalid_time_format":
		httperr.BadRequest(c, code, "Invalid date format.")
	case "invalid_interval":
		httperr.BadRequest(c, code, "End time must be after start time.")
	case "invalid_email":
		httperr.BadRequest(c, code, "Invalid attendee email address.")
	case "invalid_state":
		httperr.BadRequest(c, code, "Booking is not in a cancellable state.")
	default:
		httperr.BadRequest(c, code, "Invalid request.")
	}
}
