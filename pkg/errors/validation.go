package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds cell and container names.
const maxNameLength = 256

// ValidateCellName validates a cell or container name.
//
// Names must be non-empty, at most 256 characters, and free of control
// characters and whitespace. Layout tools treat cell names as opaque keys,
// so no further restriction is applied.
func ValidateCellName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "cell name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "cell name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "cell name contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "cell name contains whitespace: %q", name)
		}
	}

	return nil
}

// ValidateLabelText validates the text of a label cell.
// Text must be non-empty and single-line.
func ValidateLabelText(text string) error {
	if text == "" {
		return New(ErrCodeInvalidSpec, "label text cannot be empty")
	}
	if strings.ContainsAny(text, "\r\n\x00") {
		return New(ErrCodeInvalidSpec, "label text must be a single line: %q", text)
	}
	return nil
}
