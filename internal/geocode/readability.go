package geocode

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Provider short-codes ("89XF+RV" style) are compact grid references, not
// something a customer recognizes, so they are never accepted as a place
// name even when nothing else is available.
var shortCodeRe = regexp.MustCompile(`(?i)^[0-9a-z]{4,8}\+[0-9a-z]{2,3}$`)

var numericRe = regexp.MustCompile(`^[0-9]+$`)

// isReadable reports whether s is acceptable as a human-facing place name.
func isReadable(s string) bool {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 3 {
		return false
	}
	if numericRe.MatchString(s) {
		return false
	}
	return !shortCodeRe.MatchString(s)
}
