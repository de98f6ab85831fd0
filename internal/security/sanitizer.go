// Package security provides input sanitization for user-supplied text.
package security

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	htmlPolicy = bluemonday.StrictPolicy()
	phoneRegex = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// SanitizeString removes potentially dangerous characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	if len(input) > 1000 {
		input = input[:1000]
	}

	return input
}

// SanitizeHTML removes all HTML tags
func SanitizeHTML(input string) string {
	return htmlPolicy.Sanitize(input)
}

// SanitizeText applies both passes. Trip names, event descriptions and
// notes all go through this before they are stored.
func SanitizeText(input string) string {
	return SanitizeHTML(SanitizeString(input))
}

// ValidatePhoneNumber checks if phone number is valid
func ValidatePhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "+", "")

	return phoneRegex.MatchString(phone)
}
