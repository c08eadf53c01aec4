package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// slugify lowercases a title and collapses everything that is not a letter
// or digit into single dashes.
func slugify(s string) string {
	var b strings.Builder
	dash := true // suppress leading dashes
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// shortToken is the collision-breaking suffix appended when two records
// slugify to the same value.
func shortToken() string {
	return uuid.NewString()[:8]
}

// identityToken derives a stable fallback username fragment from an auth
// identity, for the retry path when the name-based username is taken.
func identityToken(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:])[:10]
}
