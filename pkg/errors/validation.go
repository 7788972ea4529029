package errors

import (
	"strings"
	"unicode"
)

// MaxTabDepthRatio is the largest accepted tab depth ratio. A blank's bite
// must stay inside the base rectangle and clear of the bumps on adjacent
// sides, so the usable range ends well before 0.5 of the shorter piece
// dimension.
const MaxTabDepthRatio = 0.35

// MaxTolerance is the largest accepted adjacency tolerance in pixels.
// Larger values start classifying diagonal neighbors as sharing an edge.
const MaxTolerance = 16

// ValidateRegionID validates a region identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path separators (identifiers end up in cache keys and file names)
//   - Maximum length of 256 characters
func ValidateRegionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidRegion, "region id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidRegion, "region id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRegion, "region id contains control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidRegion, "region id cannot contain path separators")
	}

	return nil
}

// ValidateDimensions validates a region's width and height.
func ValidateDimensions(id string, width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidRegion, "region %q has non-positive dimensions %dx%d", id, width, height)
	}
	return nil
}

// ValidateTabDepthRatio validates the tab depth ratio configuration value.
// The ratio must be positive and small enough that a blank's bite cannot
// reach the opposite edge of its piece.
func ValidateTabDepthRatio(ratio float64) error {
	if ratio <= 0 {
		return New(ErrCodeInvalidRatio, "tab depth ratio must be positive, got %g", ratio)
	}
	if ratio > MaxTabDepthRatio {
		return New(ErrCodeInvalidRatio, "tab depth ratio %g exceeds maximum %g", ratio, MaxTabDepthRatio)
	}
	return nil
}

// ValidateTolerance validates the adjacency tolerance configuration value.
func ValidateTolerance(tolerance int) error {
	if tolerance < 0 {
		return New(ErrCodeInvalidTolerance, "tolerance must be non-negative, got %d", tolerance)
	}
	if tolerance > MaxTolerance {
		return New(ErrCodeInvalidTolerance, "tolerance %d exceeds maximum %d", tolerance, MaxTolerance)
	}
	return nil
}
