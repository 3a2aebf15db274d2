package model

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// transitions is the full lifecycle table: pending and confirmed may be
// cancelled, pending moves forward to confirmed, confirmed to completed.
// Cancelled and completed are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CanTransition reports whether a booking may move from one status to
// another. Unknown statuses never transition.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.IsValid()
}

// IsValid reports whether the status is one of the known lifecycle states.
func (s BookingStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// BlocksRoom reports whether a booking in this status occupies its date
// range for overlap purposes. Cancelled bookings free the range.
func (s BookingStatus) BlocksRoom() bool {
	return s != StatusCancelled
}
