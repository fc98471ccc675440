// Package availability holds the pure date arithmetic behind borrow
// scheduling. Everything here is day-granular: ranges are inclusive on both
// ends, and a range with no end date covers exactly its start day.
package availability

import "time"

// Rejection explains why a candidate range cannot be booked.
type Rejection string

const (
	RejectInvalidRange    Rejection = "invalid_range"
	RejectOverlapBooking  Rejection = "overlap_booking"
	RejectOverlapBlackout Rejection = "overlap_blackout"
)

// Booking is an existing reservation consulted during a check. Only approved
// bookings block new requests.
type Booking struct {
	Start    time.Time
	End      *time.Time
	Approved bool
}

// Day truncates t to midnight UTC so comparisons work on calendar days.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeEnd resolves the effective end day of a range. A missing end means
// a single-day booking.
func NormalizeEnd(start time.Time, end *time.Time) time.Time {
	if end == nil {
		return Day(start)
	}
	return Day(*end)
}

// Overlaps reports whether two inclusive day ranges share at least one day.
// A shared boundary day counts as overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// ContainsDay reports whether day falls inside the inclusive range.
func ContainsDay(start, end, day time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

// Check validates a candidate range against existing bookings and blackout
// days. It returns nil when the range can be booked, or the first applicable
// rejection: invalid range, then booking overlap, then blackout overlap.
func Check(start time.Time, end *time.Time, bookings []Booking, blackouts []time.Time) *Rejection {
	s := Day(start)
	e := NormalizeEnd(start, end)

	if e.Before(s) {
		return reject(RejectInvalidRange)
	}

	for _, b := range bookings {
		if !b.Approved {
			continue
		}
		bs := Day(b.Start)
		be := NormalizeEnd(b.Start, b.End)
		if Overlaps(s, e, bs, be) {
			return reject(RejectOverlapBooking)
		}
	}

	for _, d := range blackouts {
		if ContainsDay(s, e, Day(d)) {
			return reject(RejectOverlapBlackout)
		}
	}

	return nil
}

func reject(r Rejection) *Rejection {
	return &r
}
