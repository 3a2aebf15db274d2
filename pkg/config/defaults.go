package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "innkeep"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Reservation policy. MaxStayNights mirrors the product default; it is
	// a policy knob, not a hard business invariant.
	DefaultMaxStayNights = 30

	// Commit protocol guard. A lock lives at most LockTTL so a crashed
	// writer cannot wedge a room; a commit attempt waits at most
	// LockWaitTimeout for the guard before surfacing a timeout.
	DefaultLockTTL         = 10 * time.Second
	DefaultLockWaitTimeout = 3 * time.Second
	DefaultLockRetryDelay  = 100 * time.Millisecond

	DefaultBookingEventsTopic = "booking-events"

	DefaultPaginationLimit = 100
)
