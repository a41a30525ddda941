// Package slug derives URL-safe slugs for listings and posts.
//
// Derivation: lowercase, fold any run of non-alphanumeric characters to a
// single hyphen, trim leading/trailing hyphens. An input that folds to
// nothing (all punctuation, empty) gets a timestamp-based placeholder so the
// caller always receives a usable slug.
package slug

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Make derives a slug from name. Returns "" when nothing survives folding;
// use MakeOrPlaceholder when a non-empty result is required.
func Make(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			// Non-ASCII letters are kept; the directory has businesses with
			// accented names and Mongo slugs don't require ASCII.
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// MakeOrPlaceholder derives a slug from name, falling back to a
// timestamp-based placeholder when the name folds to nothing.
func MakeOrPlaceholder(name string, now time.Time) string {
	if s := Make(name); s != "" {
		return s
	}
	return fmt.Sprintf("listing-%d", now.UTC().Unix())
}

// WithSuffix returns the slug for the nth occupant of a base slug:
// the base itself for n==1, "base-2", "base-3", ... for later ones.
func WithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
