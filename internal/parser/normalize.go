package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

// Normalise lowercases raw and collapses runs of whitespace to one space.
func Normalise(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	return multiSpaceRE.ReplaceAllString(raw, " ")
}

// StripWhitespace removes every whitespace rune from s. Case is preserved.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// JoinArgs joins tokens with single spaces.
func JoinArgs(tokens []string) string {
	return strings.Join(tokens, " ")
}
