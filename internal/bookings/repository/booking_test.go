package repository

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"innkeep/pkg/interval"
	"innkeep/pkg/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildOverlapFilter(t *testing.T) {
	stay := interval.New(date(2025, 5, 1), date(2025, 5, 10))
	filter := buildOverlapFilter("room-1", stay, "")

	if filter["room_id"] != "room-1" {
		t.Errorf("room_id = %v", filter["room_id"])
	}
	if filter["is_deleted"] != false {
		t.Error("filter must exclude soft-deleted bookings")
	}

	status, ok := filter["status"].(bson.M)
	if !ok || status["$ne"] != model.StatusCancelled {
		t.Errorf("status filter = %v, want $ne cancelled", filter["status"])
	}

	checkIn, ok := filter["check_in"].(bson.M)
	if !ok || !checkIn["$lt"].(time.Time).Equal(stay.CheckOut) {
		t.Errorf("check_in filter = %v, want $lt %v", filter["check_in"], stay.CheckOut)
	}
	checkOut, ok := filter["check_out"].(bson.M)
	if !ok || !checkOut["$gt"].(time.Time).Equal(stay.CheckIn) {
		t.Errorf("check_out filter = %v, want $gt %v", filter["check_out"], stay.CheckIn)
	}

	if _, present := filter["_id"]; present {
		t.Error("no _id clause expected without an exclude ID")
	}
}

func TestBuildOverlapFilter_ExcludeID(t *testing.T) {
	stay := interval.New(date(2025, 5, 1), date(2025, 5, 10))
	excludeID := primitive.NewObjectID()

	filter := buildOverlapFilter("room-1", stay, excludeID.Hex())

	idClause, ok := filter["_id"].(bson.M)
	if !ok {
		t.Fatalf("_id clause missing: %v", filter)
	}
	if idClause["$ne"] != excludeID {
		t.Errorf("_id $ne = %v, want %v", idClause["$ne"], excludeID)
	}

	// A malformed exclude ID is ignored rather than matching nothing.
	filter = buildOverlapFilter("room-1", stay, "not-an-oid")
	if _, present := filter["_id"]; present {
		t.Error("malformed exclude ID must not produce an _id clause")
	}
}

func TestBuildSearchFilter(t *testing.T) {
	from := date(2025, 5, 1)
	to := date(2025, 5, 31)

	tests := []struct {
		name       string
		roomID     string
		userID     string
		from, to   *time.Time
		wantKeys   []string
		absentKeys []string
	}{
		{
			name:       "room only",
			roomID:     "room-1",
			wantKeys:   []string{"room_id", "is_deleted"},
			absentKeys: []string{"user_id", "check_in", "check_out"},
		},
		{
			name:       "user only",
			userID:     "guest-1",
			wantKeys:   []string{"user_id", "is_deleted"},
			absentKeys: []string{"room_id"},
		},
		{
			name:     "full window",
			roomID:   "room-1",
			from:     &from,
			to:       &to,
			wantKeys: []string{"room_id", "check_in", "check_out"},
		},
		{
			name:       "open-ended from",
			userID:     "guest-1",
			from:       &from,
			wantKeys:   []string{"check_out"},
			absentKeys: []string{"check_in"},
		},
		{
			name:       "open-ended to",
			userID:     "guest-1",
			to:         &to,
			wantKeys:   []string{"check_in"},
			absentKeys: []string{"check_out"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := buildSearchFilter(tt.roomID, tt.userID, tt.from, tt.to)

			for _, key := range tt.wantKeys {
				if _, ok := filter[key]; !ok {
					t.Errorf("missing key %q in %v", key, filter)
				}
			}
			for _, key := range tt.absentKeys {
				if _, ok := filter[key]; ok {
					t.Errorf("unexpected key %q in %v", key, filter)
				}
			}
		})
	}
}
