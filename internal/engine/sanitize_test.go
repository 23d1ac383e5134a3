package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-age/internal/engine"
)

func TestSanitizeDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"Digits only", "1234", 4, "1234"},
		{"Strips separators", "12/03", 4, "1203"},
		{"Truncates", "123456", 2, "12"},
		{"Unicode digits dropped", "1٣2", 4, "12"},
		{"Whitespace", " 0 5 ", 2, "05"},
		{"No limit", "a1b2c3", 0, "123"},
		{"Empty", "", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.SanitizeDigits(tt.input, tt.limit))
		})
	}
}

func TestSanitizeTriple(t *testing.T) {
	got := engine.SanitizeTriple(engine.DateTriple{Day: " 7th", Month: "03 ", Year: "1999-ish2"})
	assert.Equal(t, engine.DateTriple{Day: "7", Month: "03", Year: "1999"}, got)
}
