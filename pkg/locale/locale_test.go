package locale

import "testing"

func TestInferCountryFromPhone(t *testing.T) {
	tests := []struct {
		phone string
		code  string
	}{
		{"+12125550123", "US"},
		{"+442071838750", "GB"},
		{"+972501234567", "IL"},
		{"972501234567", "IL"},
		{"+33123456789", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			country := InferCountryFromPhone(tt.phone)
			if tt.code == "" {
				if country != nil {
					t.Errorf("expected no match, got %s", country.Code)
				}
				return
			}
			if country == nil || country.Code != tt.code {
				t.Errorf("got %v, want %s", country, tt.code)
			}
		})
	}
}

func TestInferTimezoneFromPhone(t *testing.T) {
	if tz := InferTimezoneFromPhone("+442071838750"); tz != "Europe/London" {
		t.Errorf("GB timezone = %s", tz)
	}
	if tz := InferTimezoneFromPhone("+33123456789"); tz != DefaultTimezone {
		t.Errorf("unknown prefix should fall back to UTC, got %s", tz)
	}
}
