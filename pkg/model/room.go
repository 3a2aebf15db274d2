package model

// Room is read-only reference data owned by the catalog collaborator.
// The engine consumes id, nightly rate and capacity; it never mutates rooms.
type Room struct {
	ID           string  `json:"id" bson:"_id"`
	RoomNumber   string  `json:"room_number" bson:"room_number"`
	RatePerNight float64 `json:"rate_per_night" bson:"rate_per_night"`
	Capacity     int     `json:"capacity" bson:"capacity"`
	IsActive     bool    `json:"is_active" bson:"is_active"`
}
