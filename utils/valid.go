// utils/valid.go
package utils

import (
	"errors"
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	scriptRegex = regexp.MustCompile(`<script[^>]*>.*?</script>`)
)

// SanitizeInput sanitizes user-supplied text to prevent XSS and injection
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = scriptRegex.ReplaceAllString(input, "")
	input = html.EscapeString(input)

	// Strip control characters
	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' {
			return -1
		}
		return r
	}, input)

	return input
}

// SanitizeEmail normalizes and validates an email address
func SanitizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return "", errors.New("invalid email format")
	}
	return email, nil
}

// SanitizeUsername normalizes a username; callers validate length/charset
func SanitizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
