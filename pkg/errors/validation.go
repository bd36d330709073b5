package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxInputLength bounds the raw comma-separated input accepted from users.
const MaxInputLength = 4096

// MaxValues bounds the number of values a single tree may be built from.
// Trees are meant to be read by a person one step at a time.
const MaxValues = 256

// ValidateInput rejects raw value lists that are empty, oversized, or carry
// control characters other than whitespace.
func ValidateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "input cannot be empty")
	}

	if len(text) > MaxInputLength {
		return New(ErrCodeInvalidInput, "input too long (max %d characters)", MaxInputLength)
	}

	for _, r := range text {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "input contains invalid control characters")
		}
	}

	return nil
}

// ValidateDimensions checks a drawing rectangle and node radius.
// The vertical padding (30 + radius on each side) must leave room to draw.
func ValidateDimensions(width, height, radius float64) error {
	for name, v := range map[string]float64{"width": width, "height": height, "radius": radius} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidDimension, "%s must be a positive number", name)
		}
	}

	if height <= 2*(30+radius) {
		return New(ErrCodeInvalidDimension, "height %.0f too small for node radius %.0f", height, radius)
	}

	if width <= 100 {
		return New(ErrCodeInvalidDimension, "width %.0f too small (min 100)", width)
	}

	return nil
}
