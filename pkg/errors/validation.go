package errors

import (
	"strings"
	"unicode"
)

// MaxIDLength is the longest accepted element ID.
const MaxIDLength = 256

// MaxTextLength is the longest accepted name or label text.
const MaxTextLength = 4096

// ValidateElementID validates the ID of a diagram element in the wire
// format. IDs end up in cache keys, DOT output and SVG attributes, so the
// rules are conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No quotes or angle brackets
//   - Maximum length of 256 characters
func ValidateElementID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s id cannot be empty", kind)
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidInput, "%s id too long (max %d characters)", kind, MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s id %q contains control characters", kind, id)
		}
	}

	if strings.ContainsAny(id, "\"<>") {
		return New(ErrCodeInvalidInput, "%s id %q contains invalid characters", kind, id)
	}

	return nil
}

// ValidateText validates a name or label text. Newlines and tabs are
// allowed; other control characters are not.
func ValidateText(kind, text string) error {
	if len(text) > MaxTextLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", kind, MaxTextLength)
	}

	for _, r := range text {
		if r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains control characters", kind)
		}
	}

	return nil
}
