package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"innkeep/internal/bookings/events"
	"innkeep/pkg/config"
	"innkeep/pkg/kafka"
	kafka_config "innkeep/pkg/kafka/config"
	"innkeep/pkg/locale"
)

const ServiceName = "notifier"

// The notifier consumes booking lifecycle events and fans them out to
// guests. Delivery is log-only for now; the consumer, retry and DLQ
// plumbing is the part that matters.
func main() {
	cfg := config.Load(ServiceName)
	kafkaCfg := kafka_config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.BookingEventsTopic,
		kafkaCfg.ConsumerGroupPrefix+"-"+ServiceName,
		cfg.BookingEventsTopic+".dlq",
		handleEvent(cfg),
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	defer consumer.Close()

	cfg.Log.Info("Notifier started", "topic", cfg.BookingEventsTopic)

	if err := consumer.Run(ctx); err != nil &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, kafka.ErrConsumerClosed) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier stopped")
}

func handleEvent(cfg *config.Config) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event events.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}

		cfg.Log.Info("Guest notification",
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
			"booking_id", event.BookingID,
			"reference_code", event.ReferenceCode,
			"room_id", event.RoomID,
			"check_in", event.CheckIn.Format("2006-01-02"),
			"check_out", event.CheckOut.Format("2006-01-02"),
			"status", event.Status,
			"guest_timezone", locale.InferTimezoneFromPhone(event.GuestPhone),
		)
		return nil
	}
}
