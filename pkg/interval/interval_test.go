package interval

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	base := New(date(2025, 3, 10), date(2025, 3, 15))

	tests := []struct {
		name    string
		other   DateRange
		overlap bool
	}{
		{
			name:    "exact match",
			other:   New(date(2025, 3, 10), date(2025, 3, 15)),
			overlap: true,
		},
		{
			name:    "partial overlap on the left",
			other:   New(date(2025, 3, 8), date(2025, 3, 12)),
			overlap: true,
		},
		{
			name:    "partial overlap on the right",
			other:   New(date(2025, 3, 13), date(2025, 3, 20)),
			overlap: true,
		},
		{
			name:    "fully contained",
			other:   New(date(2025, 3, 11), date(2025, 3, 13)),
			overlap: true,
		},
		{
			name:    "fully containing",
			other:   New(date(2025, 3, 1), date(2025, 3, 31)),
			overlap: true,
		},
		{
			name:    "touching on checkout day is not a conflict",
			other:   New(date(2025, 3, 15), date(2025, 3, 20)),
			overlap: false,
		},
		{
			name:    "touching on check-in day is not a conflict",
			other:   New(date(2025, 3, 5), date(2025, 3, 10)),
			overlap: false,
		},
		{
			name:    "disjoint before",
			other:   New(date(2025, 3, 1), date(2025, 3, 5)),
			overlap: false,
		},
		{
			name:    "disjoint after",
			other:   New(date(2025, 3, 20), date(2025, 3, 25)),
			overlap: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.overlap {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", base, tt.other, got, tt.overlap)
			}
			// The predicate is symmetric.
			if got := tt.other.Overlaps(base); got != tt.overlap {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.other, base, got, tt.overlap)
			}
		})
	}
}

func TestNewTruncatesToUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	r := New(
		time.Date(2025, 6, 1, 23, 45, 0, 0, loc),
		time.Date(2025, 6, 4, 2, 15, 0, 0, loc),
	)

	if !r.CheckIn.Equal(date(2025, 6, 1)) {
		t.Errorf("CheckIn = %v, want %v", r.CheckIn, date(2025, 6, 1))
	}
	if !r.CheckOut.Equal(date(2025, 6, 3)) {
		t.Errorf("CheckOut = %v, want %v", r.CheckOut, date(2025, 6, 3))
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		name   string
		r      DateRange
		nights int
	}{
		{"single night", New(date(2025, 3, 1), date(2025, 3, 2)), 1},
		{"four nights", New(date(2025, 3, 1), date(2025, 3, 5)), 4},
		{"empty range", New(date(2025, 3, 1), date(2025, 3, 1)), 0},
		{"month boundary", New(date(2025, 3, 31), date(2025, 4, 2)), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Nights(); got != tt.nights {
				t.Errorf("Nights() = %d, want %d", got, tt.nights)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if !New(date(2025, 3, 1), date(2025, 3, 2)).IsValid() {
		t.Error("one-night range should be valid")
	}
	if New(date(2025, 3, 2), date(2025, 3, 2)).IsValid() {
		t.Error("zero-night range should be invalid")
	}
	if New(date(2025, 3, 3), date(2025, 3, 2)).IsValid() {
		t.Error("reversed range should be invalid")
	}
}

func TestContains(t *testing.T) {
	r := New(date(2025, 3, 10), date(2025, 3, 12))

	if !r.Contains(date(2025, 3, 10)) {
		t.Error("check-in date should be inside the range")
	}
	if !r.Contains(date(2025, 3, 11)) {
		t.Error("middle date should be inside the range")
	}
	if r.Contains(date(2025, 3, 12)) {
		t.Error("checkout date should be outside the range")
	}
}
