// Package slug derives URL-safe identifiers from titles.
package slug

import (
	"strings"
)

// MaxLen bounds the length of a derived slug in bytes.
const MaxLen = 150

// Make derives a slug from a title: lowercase, runs of anything outside
// [a-z0-9] collapse to a single hyphen, no leading or trailing hyphen,
// truncated to MaxLen. The derivation is deterministic.
func Make(title string) string {
	var (
		b        strings.Builder
		lastDash = true // suppress a leading hyphen
	)

	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)

			lastDash = false
		case !lastDash:
			b.WriteByte('-')

			lastDash = true
		}
	}

	out := strings.TrimRight(b.String(), "-")

	if len(out) > MaxLen {
		out = strings.TrimRight(out[:MaxLen], "-")
	}

	return out
}

// IsValid reports whether s already satisfies the slug invariant:
// non-empty, only [a-z0-9-], no leading/trailing hyphen.
func IsValid(s string) bool {
	if s == "" || len(s) > MaxLen {
		return false
	}

	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}

	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}

	return true
}
