package model

import "time"

// RoomLock is the advisory lock document that serializes commit attempts
// for a single room. The unique _id makes acquisition an atomic insert;
// a TTL index on expires_at reclaims locks left behind by crashed writers.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	RoomID    string    `bson:"room_id" json:"room_id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
