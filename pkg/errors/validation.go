package errors

import (
	"strings"
	"unicode"
)

// ValidateDatasetID validates a dataset identifier for safety and correctness.
// Dataset IDs are used to look up files on disk and build cache keys, so it
// rejects anything that could be used for path traversal or injection.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 128 characters
func ValidateDatasetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDataset, "dataset id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidDataset, "dataset id too long (max 128 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "dataset id contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
		"/",    // Path separator (IDs are simple names, not paths)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidDataset, "dataset id contains invalid characters: %q", pattern)
		}
	}

	return nil
}
