package events

import (
	"context"
	"time"

	"innkeep/pkg/kafka"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
	TypeBookingCompleted = "booking.completed"

	SourceService = "innkeep-bookings"
)

// BookingEvent is the payload published on every lifecycle change. Events
// are keyed by room so consumers see per-room changes in order.
type BookingEvent struct {
	BookingID     string    `json:"booking_id"`
	ReferenceCode string    `json:"reference_code,omitempty"`
	RoomID        string    `json:"room_id"`
	UserID        string    `json:"user_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Nights        int       `json:"nights"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	GuestPhone    string    `json:"guest_phone,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Implementations must not block
// the request path on broker slowness beyond the context deadline.
type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
	Close() error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: producer, log: log}
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	event := BookingEvent{
		BookingID:     booking.ID,
		ReferenceCode: booking.ReferenceCode,
		RoomID:        booking.RoomID,
		UserID:        booking.UserID,
		CheckIn:       booking.CheckIn,
		CheckOut:      booking.CheckOut,
		Nights:        booking.Nights,
		TotalPrice:    booking.TotalPrice,
		Status:        string(booking.Status),
		GuestPhone:    booking.Guest.Phone,
		OccurredAt:    time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(booking.RoomID).
		WithValue(event).
		WithEventType(eventType).
		WithSource(SourceService).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"room_id", booking.RoomID,
			"error", err,
		)
		return err
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops events; used when the broker is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, *model.Booking) error { return nil }
func (NopPublisher) Close() error                                          { return nil }
