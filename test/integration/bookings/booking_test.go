package bookings_test

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"

	"innkeep/pkg/model"
	"innkeep/test/integration/testutil"
)

// These tests run against a live service and need:
//
//	TEST_SERVER_URL  base URL of a running bookings service
//	TEST_ROOM_ID     an active room in the target database
//
// Without them the suite is skipped.

var roomID string

func setup(t *testing.T) *testutil.Client {
	t.Helper()

	client := testutil.NewClient("integration-tester")
	if client == nil {
		t.Skip("TEST_SERVER_URL not set, skipping integration tests")
	}

	roomID = os.Getenv("TEST_ROOM_ID")
	if roomID == "" {
		t.Skip("TEST_ROOM_ID not set, skipping integration tests")
	}

	client.WaitForHealthy(t, 30*time.Second)
	return client
}

// freeRange picks a random far-future window so repeated runs do not
// collide with each other's leftovers.
func freeRange(nights int) (string, string) {
	start := time.Now().UTC().AddDate(1, 0, rand.Intn(5000))
	return start.Format("2006-01-02"), start.AddDate(0, 0, nights).Format("2006-01-02")
}

func createPayload(checkIn, checkOut string) map[string]any {
	return map[string]any{
		"room_id":   roomID,
		"check_in":  checkIn + "T00:00:00Z",
		"check_out": checkOut + "T00:00:00Z",
		"guest": map[string]any{
			"full_name": "Integration Tester",
			"email":     "tester@example.com",
		},
	}
}

func decodeBooking(t *testing.T, resp *testutil.Response) *model.Booking {
	t.Helper()
	var result struct {
		Data model.Booking `json:"data"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		t.Fatalf("failed to decode booking: %v. Body: %s", err, string(resp.Body))
	}
	return &result.Data
}

func cleanupBooking(t *testing.T, client *testutil.Client, id string) {
	t.Helper()
	client.DELETE(t, "/api/v1/bookings/id/"+id)
}

func TestCreateAndGet(t *testing.T) {
	client := setup(t)

	checkIn, checkOut := freeRange(3)
	resp := client.POST(t, "/api/v1/bookings", createPayload(checkIn, checkOut))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	created := decodeBooking(t, resp)
	defer cleanupBooking(t, client, created.ID)

	if created.Status != model.StatusPending {
		t.Errorf("new booking status = %s, want pending", created.Status)
	}
	if created.Nights != 3 {
		t.Errorf("nights = %d, want 3", created.Nights)
	}
	if created.ReferenceCode == "" {
		t.Error("expected a reference code")
	}

	resp = client.GET(t, "/api/v1/bookings/id/"+created.ID)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	fetched := decodeBooking(t, resp)
	if fetched.ID != created.ID {
		t.Errorf("fetched ID = %s, want %s", fetched.ID, created.ID)
	}
}

func TestOverlapConflict(t *testing.T) {
	client := setup(t)

	checkIn, checkOut := freeRange(4)
	resp := client.POST(t, "/api/v1/bookings", createPayload(checkIn, checkOut))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	first := decodeBooking(t, resp)
	defer cleanupBooking(t, client, first.ID)

	resp = client.POST(t, "/api/v1/bookings", createPayload(checkIn, checkOut))
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, "CONFLICT")
	testutil.AssertContains(t, resp, "conflict_check_in")
}

func TestTouchingRangesAllowed(t *testing.T) {
	client := setup(t)

	checkIn, checkOut := freeRange(3)
	resp := client.POST(t, "/api/v1/bookings", createPayload(checkIn, checkOut))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	first := decodeBooking(t, resp)
	defer cleanupBooking(t, client, first.ID)

	// Second stay checks in on the first stay's check-out day.
	nextOut := first.CheckOut.AddDate(0, 0, 2).Format("2006-01-02")
	resp = client.POST(t, "/api/v1/bookings", createPayload(checkOut, nextOut))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	second := decodeBooking(t, resp)
	defer cleanupBooking(t, client, second.ID)
}

func TestAvailability(t *testing.T) {
	client := setup(t)

	checkIn, checkOut := freeRange(3)
	resp := client.POST(t, "/api/v1/bookings", createPayload(checkIn, checkOut))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	created := decodeBooking(t, resp)
	defer cleanupBooking(t, client, created.ID)

	path := fmt.Sprintf("/api/v1/rooms/%s/availability?check_in=%s&check_out=%s", roomID, checkIn, checkOut)
	resp = client.GET(t, path)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result struct {
		Data struct {
			Available bool             `json:"available"`
			Conflicts []*model.Booking `json:"conflicts"`
		} `json:"data"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		t.Fatalf("failed to decode availability: %v", err)
	}
	if result.Data.Available {
		t.Error("booked range reported as available")
	}
	if len(result.Data.Conflicts) == 0 {
		t.Error("expected the blocking booking in conflicts")
	}
}

func TestLifecycle(t *testing.T) {
	client := setup(t)

	checkIn, checkOut := freeRange(2)
	resp := client.POST(t, "/api/v1/bookings", createPayload(checkIn, checkOut))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	created := decodeBooking(t, resp)
	defer cleanupBooking(t, client, created.ID)

	resp = client.POST(t, "/api/v1/bookings/id/"+created.ID+"/confirm", nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	if b := decodeBooking(t, resp); b.Status != model.StatusConfirmed {
		t.Fatalf("status after confirm = %s", b.Status)
	}

	// Completing before cancel; a confirmed booking may do either, but once
	// completed it is terminal.
	resp = client.POST(t, "/api/v1/bookings/id/"+created.ID+"/complete", nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = client.POST(t, "/api/v1/bookings/id/"+created.ID+"/cancel", nil)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}

func TestCancelFreesRange(t *testing.T) {
	client := setup(t)

	checkIn, checkOut := freeRange(3)
	resp := client.POST(t, "/api/v1/bookings", createPayload(checkIn, checkOut))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	first := decodeBooking(t, resp)
	defer cleanupBooking(t, client, first.ID)

	resp = client.POST(t, "/api/v1/bookings/id/"+first.ID+"/cancel", nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	resp = client.POST(t, "/api/v1/bookings", createPayload(checkIn, checkOut))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)
	second := decodeBooking(t, resp)
	defer cleanupBooking(t, client, second.ID)
}

func TestMissingUserIDRejected(t *testing.T) {
	client := setup(t)

	anonymous := *client
	anonymous.UserID = ""

	checkIn, checkOut := freeRange(2)
	resp := anonymous.POST(t, "/api/v1/bookings", createPayload(checkIn, checkOut))
	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestValidationRejected(t *testing.T) {
	client := setup(t)

	// Check-out before check-in.
	checkIn, _ := freeRange(3)
	payload := createPayload(checkIn, checkIn)
	resp := client.POST(t, "/api/v1/bookings", payload)
	if resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("zero-night stay accepted with status %d", resp.StatusCode)
	}

	// Check-in in the past.
	past := time.Now().UTC().AddDate(0, 0, -10)
	payload = createPayload(past.Format("2006-01-02"), past.AddDate(0, 0, 2).Format("2006-01-02"))
	resp = client.POST(t, "/api/v1/bookings", payload)
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
}
