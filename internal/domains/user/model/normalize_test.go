package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "John@Example.COM", "john@example.com"},
		{"trims whitespace", "  john@example.com \n", "john@example.com"},
		{"gmail dots stripped", "jo.h.n@gmail.com", "john@gmail.com"},
		{"googlemail folds into gmail", "jo.hn@googlemail.com", "john@gmail.com"},
		{"gmail case and dots together", "J.O.H.N@GMAIL.com", "john@gmail.com"},
		{"dots kept for other providers", "jo.hn@example.com", "jo.hn@example.com"},
		{"no at sign left alone", "not-an-email", "not-an-email"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}
