// Package interval provides date-range arithmetic for room stays.
//
// A stay is modelled as a half-open interval [CheckIn, CheckOut): the guest
// occupies the room on the check-in date and leaves on the check-out date,
// so a checkout and a new check-in on the same day never collide.
package interval

import "time"

// DateRange is a half-open date interval [CheckIn, CheckOut).
// Both endpoints are UTC dates with a zero time-of-day component.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a DateRange from arbitrary timestamps, truncating both to
// UTC dates. Comparisons are date-only to keep timezone edges out of the
// overlap rules.
func New(checkIn, checkOut time.Time) DateRange {
	return DateRange{
		CheckIn:  DateOnly(checkIn),
		CheckOut: DateOnly(checkOut),
	}
}

// DateOnly normalizes t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC date.
func Today() time.Time {
	return DateOnly(time.Now())
}

// IsValid reports whether the range spans at least one night.
func (r DateRange) IsValid() bool {
	return r.CheckOut.After(r.CheckIn)
}

// Nights returns the number of nights covered by the range.
func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open ranges share at least one night.
// The single predicate a1 < b2 && b1 < a2 covers exact matches, partial
// overlaps and containment in either direction. Touching ranges
// (r.CheckOut == other.CheckIn) do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Contains reports whether the given date falls inside the range.
func (r DateRange) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}
