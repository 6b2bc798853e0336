package services

import (
	"strings"
	"time"
	"unicode"
)

// Slugify lowercases and collapses non-alphanumeric runs into single
// hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func utcDay() string {
	return time.Now().UTC().Format("2006-01-02")
}
