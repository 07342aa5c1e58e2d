package station

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidStation is returned when input cannot be normalized into a station ID.
var ErrInvalidStation = errors.New("station id must be exactly 4 alphanumeric characters")

var idPattern = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// ID is a validated ICAO station identifier: 4 uppercase alphanumeric characters.
type ID string

// Parse normalizes raw input (trims whitespace, uppercases) and validates it
// against the ICAO pattern. It has no side effects.
func Parse(raw string) (ID, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if !idPattern.MatchString(s) {
		return "", ErrInvalidStation
	}
	return ID(s), nil
}

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// CodeFrom returns the short board code for a station identifier.
// Continental-US ICAO ids drop the K prefix (KMDT -> MDT); anything else
// passes through uppercased.
func CodeFrom(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) == 4 && strings.HasPrefix(s, "K") {
		return s[1:]
	}
	return s
}

// ICAOFrom returns the 4-character ICAO form of a station identifier.
// 3-character codes gain the K prefix (MDT -> KMDT); 4-character ids pass
// through uppercased.
func ICAOFrom(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) == 3 {
		return "K" + s
	}
	return s
}
