package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// Validation rule failures, in the order the validator applies them.
	ErrInvalidRange = errors.New("check-out must be after check-in")
	ErrPastCheckIn  = errors.New("check-in date cannot be in the past")
	ErrStayTooLong  = errors.New("stay exceeds the maximum allowed duration")
	ErrDateConflict = errors.New("requested dates overlap an existing booking")

	ErrInvalidTransition = errors.New("invalid booking status transition")

	ErrRoomNotFound = errors.New("room not found or inactive")
)
