package validate

import (
	"regexp"
	"strings"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	charsetRe  = regexp.MustCompile(`^[a-zA-Z\d@$!%*?&]{8,}$`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	digitRe    = regexp.MustCompile(`\d`)
)

func Username(s string) bool { return usernameRe.MatchString(s) }

func Email(s string) bool { return emailRe.MatchString(s) }

// Password requires length >=8, at least one lowercase, one uppercase and one
// digit, drawn from letters, digits and a small punctuation set.
func Password(s string) bool {
	return charsetRe.MatchString(s) &&
		lowerRe.MatchString(s) &&
		upperRe.MatchString(s) &&
		digitRe.MatchString(s)
}

// Sanitize trims whitespace, strips HTML-significant and control characters
// and truncates to 100 characters. Runs before validation, never after.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<', '>', '"', '\'', '&':
			continue
		}
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	runes := []rune(out)
	if len(runes) > 100 {
		out = string(runes[:100])
	}
	return out
}
