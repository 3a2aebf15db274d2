package validator

import (
	"errors"
	"testing"
	"time"

	bookingserrors "innkeep/internal/bookings/errors"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Service: "test"})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixed "today" so the tests never depend on the wall clock
var today = date(2025, 3, 1)

func newTestValidator(maxNights int) *BookingValidator {
	v := NewBookingValidator(maxNights, testLogger())
	v.now = func() time.Time { return today }
	return v
}

func booking(id string, status model.BookingStatus, checkIn, checkOut time.Time) *model.Booking {
	return &model.Booking{
		ID:       id,
		RoomID:   "507f1f77bcf86cd799439011",
		UserID:   "guest-1",
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   status,
	}
}

func TestValidateStay_RuleOrder(t *testing.T) {
	v := newTestValidator(30)

	// An input violating every rule at once must fail on range sanity,
	// the first rule in the chain.
	err := v.ValidateStay(date(2020, 1, 10), date(2020, 1, 5), "", []*model.Booking{
		booking("b1", model.StatusPending, date(2020, 1, 1), date(2020, 2, 1)),
	})
	if !errors.Is(err, bookingserrors.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestValidateStay_InvalidRange(t *testing.T) {
	v := newTestValidator(30)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"checkout before checkin", date(2025, 3, 10), date(2025, 3, 5)},
		{"zero-night stay", date(2025, 3, 10), date(2025, 3, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStay(tt.checkIn, tt.checkOut, "", nil)
			if !errors.Is(err, bookingserrors.ErrInvalidRange) {
				t.Errorf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestValidateStay_PastCheckIn(t *testing.T) {
	v := newTestValidator(30)

	err := v.ValidateStay(today.AddDate(0, 0, -1), today.AddDate(0, 0, 5), "", nil)
	if !errors.Is(err, bookingserrors.ErrPastCheckIn) {
		t.Fatalf("expected ErrPastCheckIn, got %v", err)
	}

	// Check-in on the current date is allowed.
	if err := v.ValidateStay(today, today.AddDate(0, 0, 2), "", nil); err != nil {
		t.Fatalf("same-day check-in should be valid, got %v", err)
	}
}

func TestValidateStay_DurationExceeded(t *testing.T) {
	v := newTestValidator(30)

	if err := v.ValidateStay(date(2025, 4, 1), date(2025, 5, 1), "", nil); err != nil {
		t.Fatalf("a 30-night stay should pass, got %v", err)
	}

	err := v.ValidateStay(date(2025, 4, 1), date(2025, 5, 2), "", nil)
	if !errors.Is(err, bookingserrors.ErrStayTooLong) {
		t.Fatalf("expected ErrStayTooLong for 31 nights, got %v", err)
	}
}

func TestValidateStay_Overlap(t *testing.T) {
	v := newTestValidator(30)

	existing := []*model.Booking{
		booking("b1", model.StatusConfirmed, date(2025, 5, 1), date(2025, 5, 10)),
	}

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		conflict bool
	}{
		{"contained range is rejected", date(2025, 5, 3), date(2025, 5, 5), true},
		{"identical range is rejected", date(2025, 5, 1), date(2025, 5, 10), true},
		{"left overlap is rejected", date(2025, 4, 28), date(2025, 5, 2), true},
		{"right overlap is rejected", date(2025, 5, 9), date(2025, 5, 12), true},
		{"touching checkout is allowed", date(2025, 5, 10), date(2025, 5, 15), false},
		{"touching check-in is allowed", date(2025, 4, 25), date(2025, 5, 1), false},
		{"disjoint range is allowed", date(2025, 6, 1), date(2025, 6, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStay(tt.checkIn, tt.checkOut, "", existing)
			if tt.conflict && !errors.Is(err, bookingserrors.ErrDateConflict) {
				t.Errorf("expected ErrDateConflict, got %v", err)
			}
			if !tt.conflict && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestValidateStay_ConflictCarriesRange(t *testing.T) {
	v := newTestValidator(30)

	existing := []*model.Booking{
		booking("b1", model.StatusPending, date(2025, 5, 1), date(2025, 5, 10)),
	}

	err := v.ValidateStay(date(2025, 5, 3), date(2025, 5, 5), "", existing)

	var conflict *StayConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *StayConflict, got %T", err)
	}
	if conflict.BookingID != "b1" {
		t.Errorf("conflict booking = %q, want b1", conflict.BookingID)
	}
	if !conflict.Range.CheckIn.Equal(date(2025, 5, 1)) || !conflict.Range.CheckOut.Equal(date(2025, 5, 10)) {
		t.Errorf("conflict range = %v", conflict.Range)
	}
}

func TestValidateStay_SkipsCancelledAndDeleted(t *testing.T) {
	v := newTestValidator(30)

	cancelled := booking("b1", model.StatusCancelled, date(2025, 6, 1), date(2025, 6, 5))
	deleted := booking("b2", model.StatusConfirmed, date(2025, 6, 1), date(2025, 6, 5))
	deleted.IsDeleted = true

	err := v.ValidateStay(date(2025, 6, 1), date(2025, 6, 5), "", []*model.Booking{cancelled, deleted})
	if err != nil {
		t.Fatalf("cancelled and deleted bookings must not block the range, got %v", err)
	}
}

func TestValidateStay_ExcludeID(t *testing.T) {
	v := newTestValidator(30)

	existing := []*model.Booking{
		booking("b1", model.StatusConfirmed, date(2025, 5, 1), date(2025, 5, 10)),
	}

	// Re-validating booking b1 against the same range must not conflict
	// with itself.
	if err := v.ValidateStay(date(2025, 5, 1), date(2025, 5, 10), "b1", existing); err != nil {
		t.Fatalf("expected self-exclusion to pass, got %v", err)
	}
}

func TestValidateRequest(t *testing.T) {
	v := newTestValidator(30)

	valid := &model.CreateBookingRequest{
		RoomID:   "507f1f77bcf86cd799439011",
		CheckIn:  date(2025, 4, 1),
		CheckOut: date(2025, 4, 5),
		Guest: model.GuestContact{
			FullName: "Jamie Doe",
			Email:    "jamie@example.com",
			Phone:    "+12125550123",
		},
	}
	if err := v.ValidateRequest(valid); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*model.CreateBookingRequest)
		field  string
	}{
		{"missing room id", func(r *model.CreateBookingRequest) { r.RoomID = "" }, "RoomID"},
		{"bad room id format", func(r *model.CreateBookingRequest) { r.RoomID = "not-an-oid" }, "RoomID"},
		{"checkout not after checkin", func(r *model.CreateBookingRequest) { r.CheckOut = r.CheckIn }, "CheckOut"},
		{"bad guest email", func(r *model.CreateBookingRequest) { r.Guest.Email = "nope" }, "Email"},
		{"bad guest phone", func(r *model.CreateBookingRequest) { r.Guest.Phone = "12345" }, "Phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := *valid
			tt.mutate(&req)

			err := v.ValidateRequest(&req)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			found := false
			for _, ve := range verrs {
				if ve.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a failure on field %s, got %v", tt.field, verrs)
			}
		})
	}
}
