package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "innkeep/internal/bookings/errors"
	"innkeep/internal/bookings/events"
	"innkeep/internal/bookings/repository"
	"innkeep/internal/bookings/validator"
	catalogrepo "innkeep/internal/catalog/repository"
	"innkeep/pkg/config"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/interval"
	"innkeep/pkg/model"
	"innkeep/pkg/sanitizer"
	"innkeep/pkg/sealer"
)

type BookingService interface {
	Create(ctx context.Context, userID string, req *model.CreateBookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Search(ctx context.Context, roomID, userID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error)
	Availability(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, []*model.Booking, error)
	Confirm(ctx context.Context, id string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	Complete(ctx context.Context, id string) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.RoomLockRepository
	roomRepo  catalogrepo.RoomRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.RoomLockRepository,
	roomRepo catalogrepo.RoomRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		roomRepo:  roomRepo,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create runs the full commit protocol: sanitize and validate the request,
// probe availability, then take the room's advisory lock and re-check the
// overlap inside a transaction before inserting. Only the locked, in-
// transaction check is authoritative; the earlier probe just fails fast.
func (s *bookingService) Create(ctx context.Context, userID string, req *model.CreateBookingRequest) (*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	s.sanitizeGuest(&req.Guest)

	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}

	stay := interval.New(req.CheckIn, req.CheckOut)

	// Fast-fail probe outside the lock. A clean result here proves nothing
	// under concurrency, but a conflict here saves a lock round-trip.
	if err := s.checkStay(ctx, req.RoomID, stay, ""); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrRoomNotFound) {
			return nil, apperrors.NotFoundWithID("Room", req.RoomID)
		}
		return nil, apperrors.Internal("Failed to look up room", err)
	}

	booking := &model.Booking{
		ReferenceCode: newReferenceCode(),
		RoomID:        room.ID,
		UserID:        userID,
		CheckIn:       stay.CheckIn,
		CheckOut:      stay.CheckOut,
		Nights:        stay.Nights(),
		TotalPrice:    float64(stay.Nights()) * room.RatePerNight,
		Status:        model.StatusPending,
		Guest:         req.Guest,
	}

	lockID, err := s.acquireRoomLock(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(context.WithoutCancel(ctx), lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.checkStay(sessCtx, booking.RoomID, stay, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", booking.RoomID, "error", err)
		return nil, err
	}

	if token, err := sealer.CreateManageToken(booking.ID, booking.UserID); err == nil {
		booking.ManageToken = token
	} else {
		s.cfg.Log.Warn("Failed to issue manage token", "id", booking.ID, "error", err)
	}

	s.publish(ctx, events.TypeBookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"reference_code", booking.ReferenceCode,
		"room_id", booking.RoomID,
		"check_in", booking.CheckIn.Format("2006-01-02"),
		"check_out", booking.CheckOut.Format("2006-01-02"),
		"total_price", booking.TotalPrice,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Search(ctx context.Context, roomID, userID string, from, to *time.Time, limit int, offset int64) ([]*model.Booking, int64, error) {
	if roomID == "" && userID == "" {
		return nil, 0, apperrors.InvalidInput("At least one of room_id or user_id is required")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountBySearch(ctx, roomID, userID, from, to)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings by search",
				"room_id", roomID,
				"user_id", userID,
				"error", err,
			)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.Search(ctx, roomID, userID, from, to, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search bookings",
				"room_id", roomID,
				"user_id", userID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to search bookings", err)
		}
	}()

	wg.Wait()

	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// Availability reports whether the room is free for the range and returns
// the blocking bookings when it is not. The answer is advisory; a create
// may still lose the race to a concurrent writer.
func (s *bookingService) Availability(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, []*model.Booking, error) {
	if roomID == "" {
		return false, nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	stay := interval.New(checkIn, checkOut)
	if !stay.IsValid() {
		return false, nil, apperrors.InvalidInput("check_out must be after check_in")
	}

	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, bookingserrors.ErrRoomNotFound) {
			return false, nil, apperrors.NotFoundWithID("Room", roomID)
		}
		return false, nil, apperrors.Internal("Failed to look up room", err)
	}

	conflicts, err := s.repo.FindOverlapping(ctx, roomID, stay, "")
	if err != nil {
		return false, nil, apperrors.Internal("Failed to check availability", err)
	}

	return len(conflicts) == 0, conflicts, nil
}

func (s *bookingService) Confirm(ctx context.Context, id string) (*model.Booking, error) {
	return s.transition(ctx, id, model.StatusConfirmed, events.TypeBookingConfirmed)
}

func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	return s.transition(ctx, id, model.StatusCancelled, events.TypeBookingCancelled)
}

func (s *bookingService) Complete(ctx context.Context, id string) (*model.Booking, error) {
	return s.transition(ctx, id, model.StatusCompleted, events.TypeBookingCompleted)
}

// transition applies a status change atomically: the update is conditioned
// on the status read beforehand, so a concurrent transition makes the
// update match nothing and the request fails instead of overwriting.
func (s *bookingService) transition(ctx context.Context, id string, to model.BookingStatus, eventType string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	if !model.CanTransition(booking.Status, to) {
		return nil, apperrors.Conflict(
			"Cannot transition booking from " + string(booking.Status) + " to " + string(to),
		).WithDetails(map[string]any{
			"rule":             "invalid_transition",
			"current_status":   string(booking.Status),
			"requested_status": string(to),
		})
	}

	if err := s.repo.UpdateStatus(ctx, id, booking.Status, to); err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidTransition) {
			// The document changed between the read and the update.
			return nil, apperrors.Conflict("Booking status changed concurrently, please retry")
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to update booking status", "id", id, "to", to, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	booking.Status = to
	s.publish(ctx, eventType, booking)

	s.cfg.Log.Info("Booking status updated", "id", id, "status", to)
	return booking, nil
}

// Delete soft-deletes the booking. The record survives for history but no
// longer blocks the room's dates.
func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return s.mapLookupError(err, id)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *bookingService) sanitizeGuest(g *model.GuestContact) {
	g.FullName = sanitizer.NormalizeName(g.FullName)
	g.Email = sanitizer.NormalizeEmail(g.Email)
	if g.Phone != "" {
		g.Phone = sanitizer.NormalizePhone(g.Phone)
	}
	g.Notes = sanitizer.TrimAndNormalize(g.Notes)
}

// checkStay fetches the room's blocking bookings and runs the stay rules
// against them. With a session context the read happens inside the
// transaction, which is what makes the commit re-check authoritative.
func (s *bookingService) checkStay(ctx context.Context, roomID string, stay interval.DateRange, excludeID string) error {
	existing, err := s.repo.FindOverlapping(ctx, roomID, stay, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	if err := s.validator.ValidateStay(stay.CheckIn, stay.CheckOut, excludeID, existing); err != nil {
		return s.mapStayError(err)
	}
	return nil
}

func (s *bookingService) mapStayError(err error) error {
	var conflict *validator.StayConflict
	if errors.As(err, &conflict) {
		return apperrors.ConflictWithRange(
			"Requested dates overlap an existing booking",
			conflict.Range.CheckIn.Format("2006-01-02"),
			conflict.Range.CheckOut.Format("2006-01-02"),
		)
	}

	switch {
	case errors.Is(err, bookingserrors.ErrInvalidRange):
		return apperrors.Validation(err.Error(), map[string]any{"rule": "invalid_range"})
	case errors.Is(err, bookingserrors.ErrPastCheckIn):
		return apperrors.Validation(err.Error(), map[string]any{"rule": "past_check_in"})
	case errors.Is(err, bookingserrors.ErrStayTooLong):
		return apperrors.Validation(err.Error(), map[string]any{"rule": "stay_too_long"})
	case errors.Is(err, bookingserrors.ErrDateConflict):
		return apperrors.Conflict(err.Error())
	}
	return apperrors.Internal("Stay validation failed", err)
}

func (s *bookingService) mapLookupError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal("Failed to retrieve booking", err)
}

// acquireRoomLock takes the room's advisory lock, retrying on contention
// until the configured wait timeout. Timing out is reported as TIMEOUT, not
// CONFLICT: the caller learns nothing about the dates and may retry.
func (s *bookingService) acquireRoomLock(ctx context.Context, roomID string) (string, error) {
	lockID := "room_lock_" + roomID
	deadline := time.Now().Add(s.cfg.LockWaitTimeout)

	for {
		lock := &model.RoomLock{ID: lockID, RoomID: roomID}
		_, err := s.lockRepo.Create(ctx, lock)
		if err == nil {
			return lockID, nil
		}
		if !repository.IsLockHeld(err) {
			return "", apperrors.Internal("Failed to acquire room lock", err)
		}

		if time.Now().After(deadline) {
			s.cfg.Log.Warn("Timed out waiting for room lock", "room_id", roomID)
			return "", apperrors.Timeout("Room is busy with another booking request, please retry")
		}

		select {
		case <-ctx.Done():
			return "", apperrors.Timeout("Request cancelled while waiting for room lock")
		case <-time.After(s.cfg.LockRetryDelay):
		}
	}
}

func (s *bookingService) releaseRoomLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

// publish sends the lifecycle event; delivery failures are logged and do
// not fail the request, the booking is already durable.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, booking); err != nil {
		s.cfg.Log.Warn("Booking event not published", "event_type", eventType, "booking_id", booking.ID)
	}
}

func newReferenceCode() string {
	return "BK-" + strings.ToUpper(uuid.New().String()[:8])
}
