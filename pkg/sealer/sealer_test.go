package sealer

import "testing"

func TestRoundTrip(t *testing.T) {
	token, err := CreateManageToken("507f1f77bcf86cd799439011", "guest-42")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}

	bookingID, userID, err := ParseManageToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if bookingID != "507f1f77bcf86cd799439011" || userID != "guest-42" {
		t.Errorf("got %q/%q", bookingID, userID)
	}
}

func TestTokensAreUnique(t *testing.T) {
	a, err := CreateManageToken("id", "user")
	if err != nil {
		t.Fatal(err)
	}
	b, err := CreateManageToken("id", "user")
	if err != nil {
		t.Fatal(err)
	}
	// Random nonce: identical payloads never produce identical tokens.
	if a == b {
		t.Error("two tokens for the same payload are identical")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := CreateManageToken("booking", "user")
	if err != nil {
		t.Fatal(err)
	}

	tampered := []byte(token)
	tampered[len(tampered)-1] ^= 'x'
	if _, _, err := ParseManageToken(string(tampered)); err == nil {
		t.Error("tampered token accepted")
	}

	if _, _, err := ParseManageToken("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}

	if _, _, err := ParseManageToken(""); err == nil {
		t.Error("empty token accepted")
	}
}
