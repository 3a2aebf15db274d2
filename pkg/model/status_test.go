package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"pending to completed skips confirmation", StatusPending, StatusCompleted, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"cancelled cannot be re-cancelled", StatusCancelled, StatusCancelled, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"completed cannot revert", StatusCompleted, StatusConfirmed, false},
		{"confirmed cannot revert to pending", StatusConfirmed, StatusPending, false},
		{"unknown status never transitions", BookingStatus("checked-in"), StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusConfirmed.IsTerminal() {
		t.Error("pending and confirmed must not be terminal")
	}
	if !StatusCancelled.IsTerminal() || !StatusCompleted.IsTerminal() {
		t.Error("cancelled and completed must be terminal")
	}
	if BookingStatus("bogus").IsTerminal() {
		t.Error("unknown status must not report terminal")
	}
}

func TestBlocksRoom(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusCompleted} {
		if !s.BlocksRoom() {
			t.Errorf("%q should occupy its date range", s)
		}
	}
	if StatusCancelled.BlocksRoom() {
		t.Error("cancelled bookings must free their date range")
	}
}
