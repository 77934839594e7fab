package statement

import (
	"regexp"
	"strings"
)

// Characters that spreadsheet tools interpret as the start of a formula.
const activeChars = "=+-@|%"

// Bounded, linear-time shape check for negative numbers so that values
// like "-1,234.50" are not escaped. Bounded quantifiers keep the match
// free of backtracking blowups on adversarial input.
var negativeNumberRe = regexp.MustCompile(`^-(?:\d{1,3}(?:,\d{3}){0,6}|\d{1,15})(?:\.\d{1,6})?$`)

// SanitizeCell neutralizes formula-injection payloads. A cell whose
// first non-space character is an active character is prefixed with a
// single quote, unless it is a syntactically valid negative number.
//
// Sanitizing an already-sanitized value is a no-op: the quote prefix is
// not itself an active character.
func SanitizeCell(s string) string {
	trimmed := strings.TrimLeft(s, " \t　")
	if trimmed == "" {
		return s
	}
	if !strings.ContainsRune(activeChars, rune(trimmed[0])) {
		return s
	}
	if trimmed[0] == '-' && negativeNumberRe.MatchString(trimmed) {
		return s
	}
	return "'" + s
}
