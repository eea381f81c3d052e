package booking

import "github.com/slotcal/slotcal-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusAvailable Status = "available"
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusScheduled, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Booking Type
// ===============================

type Type string

const (
	TypeOneOnOne   Type = "one-on-one"
	TypeGroup      Type = "group"
	TypeRoundRobin Type = "round-robin"
)

func IsValidType(t Type) bool {
	switch t {
	case TypeOneOnOne, TypeGroup, TypeRoundRobin:
		return true
	}
	return false
}

// ===============================
// Transitions
// ===============================

// CanCancel: only a scheduled booking can be cancelled. There is no way
// back out of cancelled.
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusAvailable
}
