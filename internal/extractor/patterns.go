package extractor

import (
	"fmt"
	"regexp"
)

// The two URL patterns, kept deliberately lexical. Strict requires an
// explicit scheme or leading "www." and then runs until whitespace, quotes,
// or angle brackets. Lenient makes the scheme optional and instead requires
// a domain-shaped token with a 2-6 letter TLD, optionally followed by a
// path using the same excluded-character set.
//
// Lenient is a recall/precision trade-off and will match any dotted
// alphanumeric token that looks like a domain (e.g. "node.js"). That is a
// documented limitation, not a bug: matched substrings are the exact dedup
// keys downstream, so the boundaries must stay stable. Trailing punctuation
// is never stripped for the same reason.
var (
	strictRegex  = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s"'<>]+`)
	lenientRegex = regexp.MustCompile(`(?i)(?:https?://|www\.|ftp://)?[A-Za-z0-9.-]+\.[A-Za-z]{2,6}(?:/[^\s"'<>]*)?`)
)

// MatchStrict returns every non-overlapping strict match in text, in
// order of appearance, duplicates included.
func MatchStrict(text string) []string {
	return strictRegex.FindAllString(text, -1)
}

// MatchLenient returns every non-overlapping lenient match in text, in
// order of appearance, duplicates included.
func MatchLenient(text string) []string {
	return lenientRegex.FindAllString(text, -1)
}

// Pattern selects one of the two matchers.
type Pattern string

const (
	PatternStrict  Pattern = "strict"
	PatternLenient Pattern = "lenient"
)

// Find runs the selected matcher over text.
func (p Pattern) Find(text string) []string {
	switch p {
	case PatternLenient:
		return MatchLenient(text)
	default:
		return MatchStrict(text)
	}
}

// ParsePattern converts a user-supplied name into a Pattern.
func ParsePattern(name string) (Pattern, error) {
	switch Pattern(name) {
	case PatternStrict, PatternLenient:
		return Pattern(name), nil
	default:
		return "", fmt.Errorf("unknown pattern %q (expected %q or %q)", name, PatternStrict, PatternLenient)
	}
}
