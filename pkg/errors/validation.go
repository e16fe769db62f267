package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ValidateTimeLimit parses a planning time limit given in seconds and
// rejects non-numeric or non-positive values.
func ValidateTimeLimit(arg string) (float64, error) {
	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidTimeLimit, err, "time limit must be a number, got %q", arg)
	}
	if seconds <= 0 {
		return 0, New(ErrCodeInvalidTimeLimit, "time limit must be positive, got %g", seconds)
	}
	return seconds, nil
}

// ValidateName validates a problem or planner name before lookup. It rejects
// names that could be used for path traversal when the name doubles as a
// file path under the problems directory.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "name contains invalid characters: %q", pattern)
		}
	}

	return nil
}
