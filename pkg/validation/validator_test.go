package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVar(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		tag     string
		wantErr string
	}{
		{"valid email", "alice@example.com", "required,email", ""},
		{"invalid email", "alice@", "required,email", "must be a valid email"},
		{"missing", "", "required,email", "is required"},
		{"valid url", "https://cdn.example.com/a.png", "required,url", ""},
		{"invalid url", "not a url", "required,url", "must be a valid URL"},
		{"too short", "", "min=1", "must be at least 1 characters long"},
		{"too long", "abcdef", "max=5", "must be at most 5 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Var(tt.value, tt.tag)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestEngineIsShared(t *testing.T) {
	assert.Same(t, Engine(), Engine())
}
