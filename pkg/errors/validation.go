package errors

import (
	"math"
	"strings"
)

// ValidatePositive checks that a named numeric input is finite and strictly positive.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", name)
	}
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be greater than 0 (got %g)", name, v)
	}
	return nil
}

// ValidateRange checks that lo < v < hi.
func ValidateRange(name string, v, lo, hi float64) error {
	if err := ValidatePositive(name, v); err != nil {
		return err
	}
	if v <= lo || v >= hi {
		return New(ErrCodeInvalidConfig, "%s must be between %g and %g (got %g)", name, lo, hi, v)
	}
	return nil
}

// ValidateFormats checks every requested output format against the supported set.
// Format names are compared case-insensitively.
func ValidateFormats(formats []string, supported map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !supported[strings.ToLower(strings.TrimSpace(f))] {
			return New(ErrCodeInvalidFormat, "invalid format: %q", f)
		}
	}
	return nil
}
