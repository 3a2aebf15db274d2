package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookingserrors "innkeep/internal/bookings/errors"
	"innkeep/internal/bookings/events"
	"innkeep/internal/bookings/repository"
	"innkeep/pkg/config"
	"innkeep/pkg/kafka"
	kafka_config "innkeep/pkg/kafka/config"
	"innkeep/pkg/model"
)

const (
	JobName = "checkout-sweeper"

	sweepInterval = time.Minute
	sweepBatch    = 100
)

// The sweeper moves confirmed bookings whose check-out date has passed to
// completed, so terminal state does not depend on anyone calling the API.
func main() {
	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	repo := repository.NewMongoBookingRepository(cfg)
	publisher := initPublisher(cfg)
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Checkout sweeper started", "interval", sweepInterval)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	sweep(ctx, cfg, repo, publisher)
	for {
		select {
		case <-ctx.Done():
			cfg.Log.Info("Checkout sweeper stopping")
			return
		case <-ticker.C:
			sweep(ctx, cfg, repo, publisher)
		}
	}
}

func sweep(ctx context.Context, cfg *config.Config, repo repository.BookingRepository, publisher events.Publisher) {
	due, err := repo.FindDueForCompletion(ctx, time.Now().UTC(), sweepBatch)
	if err != nil {
		cfg.Log.Error("Failed to find bookings due for completion", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	completed := 0
	for _, booking := range due {
		err := repo.UpdateStatus(ctx, booking.ID, model.StatusConfirmed, model.StatusCompleted)
		if err != nil {
			// Someone cancelled or completed it between the read and the
			// update; skip it, the next sweep sees the fresh state.
			if errors.Is(err, bookingserrors.ErrInvalidTransition) {
				continue
			}
			cfg.Log.Error("Failed to complete booking", "id", booking.ID, "error", err)
			continue
		}

		booking.Status = model.StatusCompleted
		if err := publisher.Publish(ctx, events.TypeBookingCompleted, booking); err != nil {
			cfg.Log.Warn("Completion event not published", "id", booking.ID)
		}
		completed++
	}

	cfg.Log.Info("Sweep finished", "due", len(due), "completed", completed)
}

func initPublisher(cfg *config.Config) events.Publisher {
	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsTopic+".dlq", cfg.Log)
	if err != nil {
		cfg.Log.Warn("Kafka producer unavailable, completion events disabled", "error", err)
		return events.NopPublisher{}
	}
	return events.NewKafkaPublisher(producer, cfg.Log)
}
