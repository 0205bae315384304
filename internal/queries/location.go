package queries

import (
	"strings"
	"unicode"
)

// LocationRemote is the sentinel the front end sends for remote roles.
const LocationRemote = "REMOTE"

const zipcodeLength = 5

// Location is a parsed search location.
type Location struct {
	// City is the display location: "Remote", "Seattle, WA" or a zipcode.
	City    string
	State   string
	Zipcode bool
}

// ParseLocation accepts "", "REMOTE", "City, ST" or a 5-digit zipcode.
// Zipcodes pass through unchanged with an empty state.
func ParseLocation(raw string) Location {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == LocationRemote {
		return Location{City: "Remote"}
	}
	if IsZipcode(raw) {
		return Location{City: raw, Zipcode: true}
	}

	loc := Location{City: raw}
	if _, after, found := strings.Cut(raw, ","); found {
		state, _, _ := strings.Cut(after, ",")
		loc.State = strings.TrimSpace(state)
	}
	return loc
}

// IsZipcode reports whether s is exactly five ASCII digits.
func IsZipcode(s string) bool {
	if len(s) != zipcodeLength {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
