package booking

import (
	"time"

	"github.com/slotcal/slotcal-api/internal/httperr"
)

// ===============================
// Time Interval Utility
// ===============================

// ParseInstant parses an RFC3339 timestamp. Anything that does not resolve
// to a valid point in time is rejected, never coerced.
func ParseInstant(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_time_format")
	}
	return t, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any point. Touching boundaries (aEnd == bStart)
// do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ComputeEnd derives the end of a slot from its start and a duration in
// minutes.
func ComputeEnd(start time.Time, durationMin int) time.Time {
	return start.Add(time.Duration(durationMin) * time.Minute)
}
