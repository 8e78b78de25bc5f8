// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

// MaxDocumentSize caps uploaded letter documents at 10MB.
const MaxDocumentSize = 10 << 20

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// ValidDocumentType reports whether the mime type is an accepted letter
// document format (pdf, doc, docx).
func ValidDocumentType(mimeType string) bool {
	return allowedDocumentTypes[strings.ToLower(strings.TrimSpace(mimeType))]
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
