package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateFilePath validates a user-supplied input or output file path.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 1024 characters
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormats checks every requested output format against the supported set.
// Formats are compared case-insensitively after trimming whitespace.
func ValidateFormats(formats []string, supported map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		name := strings.ToLower(strings.TrimSpace(f))
		if !supported[name] {
			return New(ErrCodeInvalidFormat, "unsupported format: %q", f)
		}
	}
	return nil
}

// ValidatePositive rejects zero, negative, NaN and infinite lengths.
// The name is used in the error message (e.g. "bond_length").
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be a positive number, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative rejects negative, NaN and infinite lengths.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %v", name, v)
	}
	return nil
}
