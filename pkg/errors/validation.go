package errors

import (
	"strconv"
	"strings"
)

// ValidateStationID validates a numeric NDBC station identifier.
// Station ids on the NDBC site are positive integers (e.g., 46042).
// The parsed id is returned on success.
func ValidateStationID(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, New(ErrCodeInvalidStation, "station id cannot be empty")
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, New(ErrCodeInvalidStation, "station id must be numeric: %q", arg)
	}
	if id <= 0 {
		return 0, New(ErrCodeInvalidStation, "station id must be positive: %d", id)
	}
	return id, nil
}

// ValidateCoordinate validates a latitude or longitude string in the form
// used by the NDBC radial search: a decimal degree value followed by a
// hemisphere letter, e.g. "32.868N" or "117.267W".
//
// The hemisphere letter must match one of allowed (e.g., "NS" for latitude,
// "EW" for longitude).
func ValidateCoordinate(coord, allowed string) error {
	coord = strings.TrimSpace(coord)
	if coord == "" {
		return New(ErrCodeInvalidCoords, "coordinate cannot be empty")
	}
	hemi := coord[len(coord)-1]
	if !strings.ContainsRune(allowed, rune(hemi)) {
		return New(ErrCodeInvalidCoords, "coordinate %q must end with one of %q", coord, allowed)
	}
	deg := coord[:len(coord)-1]
	if _, err := strconv.ParseFloat(strings.TrimSpace(deg), 64); err != nil {
		return New(ErrCodeInvalidCoords, "coordinate %q has a non-numeric degree value", coord)
	}
	return nil
}

// ValidateSearchDistance validates a radial search distance in nautical miles.
// NDBC accepts distances between 1 and 9999.
func ValidateSearchDistance(dist int) error {
	if dist < 1 || dist > 9999 {
		return New(ErrCodeInvalidInput, "search distance must be between 1 and 9999 nm: %d", dist)
	}
	return nil
}
