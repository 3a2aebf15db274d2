package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  New(CodeConflict, "room already booked", http.StatusConflict),
			want: "CONFLICT: room already booked",
		},
		{
			name: "with cause",
			err:  Wrap(errors.New("connection reset"), CodeInternal, "storage write failed", http.StatusInternalServerError),
			want: "INTERNAL_ERROR: storage write failed (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("no reachable servers")
	appErr := Internal("failed to commit booking", cause)

	if !errors.Is(appErr, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if Conflict("taken").Unwrap() != nil {
		t.Error("errors without a cause should unwrap to nil")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Room"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Booking", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad dates", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("range taken"), CodeConflict, http.StatusConflict},
		{"timeout", Timeout("lock wait expired"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("storage"), CodeUnavailable, http.StatusServiceUnavailable},
		{"internal", Internal("boom", errors.New("x")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestConflictWithRange(t *testing.T) {
	err := ConflictWithRange("requested dates are taken", "2025-05-01", "2025-05-10")

	if err.Code != CodeConflict {
		t.Fatalf("Code = %q, want %q", err.Code, CodeConflict)
	}
	if err.Details["conflict_check_in"] != "2025-05-01" {
		t.Errorf("conflict_check_in = %v", err.Details["conflict_check_in"])
	}
	if err.Details["conflict_check_out"] != "2025-05-10" {
		t.Errorf("conflict_check_out = %v", err.Details["conflict_check_out"])
	}
}

func TestToJSON(t *testing.T) {
	err := NotFoundWithID("Room", "507f1f77bcf86cd799439011")

	var resp ErrorResponse
	if jsonErr := json.Unmarshal(err.ToJSON(), &resp); jsonErr != nil {
		t.Fatalf("ToJSON produced invalid JSON: %v", jsonErr)
	}
	if resp.Code != CodeNotFound {
		t.Errorf("Code = %q, want %q", resp.Code, CodeNotFound)
	}
	if resp.Details["id"] != "507f1f77bcf86cd799439011" {
		t.Errorf("Details[id] = %v", resp.Details["id"])
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("taken")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError should return the same *AppError")
	}

	plain := fmt.Errorf("disk full")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("plain errors should map to %s, got %s", CodeInternal, wrapped.Code)
	}
	if !errors.Is(wrapped, plain) {
		t.Error("the plain error should be preserved as the cause")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(Timeout("guard wait"), CodeTimeout) {
		t.Error("IsCode should match the timeout code")
	}
	if IsCode(Timeout("guard wait"), CodeConflict) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(errors.New("plain"), CodeInternal) {
		t.Error("plain errors carry no code")
	}
}
