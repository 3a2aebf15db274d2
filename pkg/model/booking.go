package model

import (
	"time"
)

// Booking is the central entity of the reservation engine. Rows are created
// only through the commit protocol in the bookings service, never inserted
// directly; they are mutated only through status transitions or soft delete
// and are never physically removed.
type Booking struct {
	ID            string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ReferenceCode string        `json:"reference_code,omitempty" bson:"reference_code,omitempty"`
	RoomID        string        `json:"room_id" bson:"room_id" validate:"required,mongodb"`
	UserID        string        `json:"user_id" bson:"user_id" validate:"required"`
	CheckIn       time.Time     `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut      time.Time     `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	Nights        int           `json:"nights" bson:"nights"`
	TotalPrice    float64       `json:"total_price" bson:"total_price"`
	Status        BookingStatus `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Guest         GuestContact  `json:"guest" bson:"guest"`
	IsDeleted     bool          `json:"-" bson:"is_deleted"`
	DeletedAt     *time.Time    `json:"-" bson:"deleted_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updated_at"`

	// ManageToken is issued on creation and never stored; it lets the
	// guest fetch or cancel this booking through the manage endpoints.
	ManageToken string `json:"manage_token,omitempty" bson:"-"`
}

// GuestContact carries the guest-facing contact block. The engine persists
// it as-is after sanitization and never interprets it.
type GuestContact struct {
	FullName string `json:"full_name,omitempty" bson:"full_name,omitempty" validate:"omitempty,max=200"`
	Email    string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	Notes    string `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CreateBookingRequest is the payload accepted on the create endpoint.
// The caller identity arrives separately, already verified upstream.
type CreateBookingRequest struct {
	RoomID   string       `json:"room_id" validate:"required,mongodb"`
	CheckIn  time.Time    `json:"check_in" validate:"required"`
	CheckOut time.Time    `json:"check_out" validate:"required,gtfield=CheckIn"`
	Guest    GuestContact `json:"guest"`
}
