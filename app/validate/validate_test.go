package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "bob1", true},
		{"underscore", "bob_the_1st", true},
		{"min length", "abc", true},
		{"max length", strings.Repeat("a", 20), true},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 21), false},
		{"dash", "bob-1", false},
		{"space", "bob 1", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Username(tt.input))
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "bob@x.com", true},
		{"subdomain", "bob@mail.x.co", true},
		{"plus tag", "bob+tag@x.com", true},
		{"no at", "bobx.com", false},
		{"no tld", "bob@x", false},
		{"one letter tld", "bob@x.c", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.input))
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "Abcdef12", true},
		{"with punctuation", "Abcdef1!", true},
		{"too short", "Abcde12", false},
		{"no uppercase", "abcdefg1", false},
		{"no lowercase", "ABCDEFG1", false},
		{"no digit", "Abcdefgh", false},
		{"bad character", "Abcdef12#", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Password(tt.input))
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "bob", Sanitize("  bob  "))
	assert.Equal(t, "scriptalert(1)/script", Sanitize(`<script>alert(1)</script>`))
	assert.Equal(t, "ab", Sanitize("a\x00\x1fb"))
	assert.Equal(t, "quoted", Sanitize(`"quoted'"`))
	assert.Len(t, []rune(Sanitize(strings.Repeat("x", 150))), 100)
	assert.Equal(t, "", Sanitize("   "))
}
