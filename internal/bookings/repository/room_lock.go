package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"innkeep/pkg/config"
	"innkeep/pkg/model"
)

const LockCollectionName = "Room_locks"

// RoomLockRepository provides operations for per-room advisory locks. The
// lock document derives its _id from the room ID, so a second writer's insert
// fails with a duplicate key error while the first holds the lock. A TTL
// index on expires_at reaps locks abandoned by a crashed holder.
type RoomLockRepository interface {
	Create(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoRoomLockRepository struct {
	collection *mongo.Collection
	lockTTL    time.Duration
}

func NewRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		collection: db.Collection(LockCollectionName),
		lockTTL:    cfg.LockTTL,
	}
}

// Create inserts the lock document. A duplicate key error means another
// writer holds the lock; callers detect it with IsLockHeld.
func (r *mongoRoomLockRepository) Create(ctx context.Context, lock *model.RoomLock) (*model.RoomLock, error) {
	now := time.Now().UTC()
	lock.CreatedAt = now
	lock.ExpiresAt = now.Add(r.lockTTL)

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoRoomLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}

// IsLockHeld reports whether a lock insert failed because the lock already
// exists.
func IsLockHeld(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
