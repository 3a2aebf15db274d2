// Package locale infers a guest's country and timezone from their phone
// number, so notifications can quote check-in times in local terms.
package locale

import "strings"

const DefaultTimezone = "UTC"

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 code
	Name            string   // human-readable name
	PhonePrefixes   []string // accepted dialing prefixes
	DefaultTimezone string   // IANA timezone identifier
}

// Countries covers the markets the sanitizer accepts phone numbers from.
var Countries = map[string]Country{
	"US": {
		Code:            "US",
		Name:            "United States",
		PhonePrefixes:   []string{"+1", "1"},
		DefaultTimezone: "America/New_York",
	},
	"GB": {
		Code:            "GB",
		Name:            "United Kingdom",
		PhonePrefixes:   []string{"+44", "44"},
		DefaultTimezone: "Europe/London",
	},
	"IL": {
		Code:            "IL",
		Name:            "Israel",
		PhonePrefixes:   []string{"+972", "972"},
		DefaultTimezone: "Asia/Jerusalem",
	},
}

// InferCountryFromPhone matches the phone's dialing prefix against the
// known markets. Longer prefixes win so +1... never shadows +972....
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)
	if normalized == "" {
		return nil
	}

	var best *Country
	bestLen := 0
	for code := range Countries {
		country := Countries[code]
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) && len(prefix) > bestLen {
				c := country
				best = &c
				bestLen = len(prefix)
			}
		}
	}
	return best
}

// InferTimezoneFromPhone returns the guest's likely timezone, falling back
// to UTC when the prefix is unknown.
func InferTimezoneFromPhone(phone string) string {
	if country := InferCountryFromPhone(phone); country != nil {
		return country.DefaultTimezone
	}
	return DefaultTimezone
}
