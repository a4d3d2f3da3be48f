package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips script tags", "before<script>alert(1)</script>after", "beforeafter"},
		{"escapes html", "<b>bold</b>", "&lt;b&gt;bold&lt;/b&gt;"},
		{"keeps newlines", "line one\nline two", "line one\nline two"},
		{"drops control chars", "a\x00b\x1fc", "abc"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeInput(tc.input))
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"valid", "user@example.com", "user@example.com", false},
		{"normalized", "  User@Example.COM ", "user@example.com", false},
		{"plus address", "user+tag@example.com", "user+tag@example.com", false},
		{"no domain", "user@", "", true},
		{"no at", "userexample.com", "", true},
		{"no tld", "user@example", "", true},
		{"empty", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SanitizeEmail(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSanitizeUsername(t *testing.T) {
	assert.Equal(t, "snapper", SanitizeUsername("  Snapper "))
	assert.Equal(t, "user42", SanitizeUsername("USER42"))
}
