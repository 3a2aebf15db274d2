package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	bookingserrors "innkeep/internal/bookings/errors"
	"innkeep/pkg/interval"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// StayConflict reports which existing booking collided with a requested
// range. It wraps ErrDateConflict so callers can branch with errors.Is.
type StayConflict struct {
	BookingID string
	Range     interval.DateRange
}

func (c *StayConflict) Error() string {
	return fmt.Sprintf("%v: taken %s to %s",
		bookingserrors.ErrDateConflict,
		c.Range.CheckIn.Format("2006-01-02"),
		c.Range.CheckOut.Format("2006-01-02"),
	)
}

func (c *StayConflict) Unwrap() error {
	return bookingserrors.ErrDateConflict
}

// BookingValidator applies the reservation business rules. It works on a
// snapshot of existing bookings handed in by the caller, so on its own it
// is advisory; the commit protocol re-runs the overlap rule under its
// concurrency guard.
type BookingValidator struct {
	validate      *validator.Validate
	maxStayNights int
	logger        *logger.Logger

	// now is swappable for tests; defaults to interval.Today.
	now func() time.Time
}

func NewBookingValidator(maxStayNights int, log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate:      validator.New(),
		maxStayNights: maxStayNights,
		logger:        log,
		now:           interval.Today,
	}
}

// ValidateRequest runs struct-level validation on the create payload.
func (v *BookingValidator) ValidateRequest(req *model.CreateBookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ValidateStay applies the stay rules in order, first failure wins:
// range sanity, no past check-in, maximum duration, then overlap against
// the supplied bookings. Bookings matching excludeID are skipped so a
// re-validation of an existing booking does not collide with itself.
func (v *BookingValidator) ValidateStay(checkIn, checkOut time.Time, excludeID string, existing []*model.Booking) error {
	stay := interval.New(checkIn, checkOut)

	if !stay.IsValid() {
		return bookingserrors.ErrInvalidRange
	}

	if stay.CheckIn.Before(v.now()) {
		return bookingserrors.ErrPastCheckIn
	}

	if stay.Nights() > v.maxStayNights {
		return fmt.Errorf("%w: %d nights exceeds the %d-night limit",
			bookingserrors.ErrStayTooLong, stay.Nights(), v.maxStayNights)
	}

	for _, b := range existing {
		if b.ID == excludeID {
			continue
		}
		if b.IsDeleted || !b.Status.BlocksRoom() {
			continue
		}
		taken := interval.New(b.CheckIn, b.CheckOut)
		if stay.Overlaps(taken) {
			return &StayConflict{BookingID: b.ID, Range: taken}
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +12125550123)", err.Field())
		case "gtfield":
			message = fmt.Sprintf("%s must be after %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
