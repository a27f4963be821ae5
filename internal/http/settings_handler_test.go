package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_validateSourceURL(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"empty clears the override", "", true},
		{"https URL", "https://api.example.com/records.json", true},
		{"http URL", "http://localhost:8080/feed", true},
		{"missing scheme", "api.example.com/records", false},
		{"unsupported scheme", "ftp://example.com/feed", false},
		{"scheme only", "https://", false},
		{"garbage", "not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateSourceURL(tt.value)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}
