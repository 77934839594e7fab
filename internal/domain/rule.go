package domain

import (
	"regexp"
	"strings"
	"time"
)

// DefaultRuleConfidence is used when a rule does not carry its own.
const DefaultRuleConfidence = 0.8

// ImportRule is a user-authored classification rule. Rules are evaluated
// in Priority order; the first active match wins.
//
// Pattern is either a literal (case-insensitive substring match) or a
// delimited regular expression of the form /expr/.
type ImportRule struct {
	ID              string
	Pattern         string
	DebitAccountID  string
	CreditAccountID string
	Confidence      float64
	Priority        int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// isRegex reports whether the pattern is in delimited /expr/ form.
func (r *ImportRule) isRegex() bool {
	return len(r.Pattern) > 2 && strings.HasPrefix(r.Pattern, "/") && strings.HasSuffix(r.Pattern, "/")
}

// Compile validates the pattern. Literal patterns always compile.
func (r *ImportRule) Compile() error {
	if strings.TrimSpace(r.Pattern) == "" {
		return ErrInvalidRulePattern
	}
	if r.isRegex() {
		if _, err := regexp.Compile(r.Pattern[1 : len(r.Pattern)-1]); err != nil {
			return ErrInvalidRulePattern
		}
	}
	return nil
}

// Matches reports whether the rule applies to the given description.
// A pattern that fails to compile never matches.
func (r *ImportRule) Matches(description string) bool {
	if !r.IsActive {
		return false
	}
	if r.isRegex() {
		re, err := regexp.Compile(r.Pattern[1 : len(r.Pattern)-1])
		if err != nil {
			return false
		}
		return re.MatchString(description)
	}
	return strings.Contains(strings.ToLower(description), strings.ToLower(r.Pattern))
}

// EffectiveConfidence returns the rule confidence, defaulted when unset.
func (r *ImportRule) EffectiveConfidence() float64 {
	if r.Confidence <= 0 || r.Confidence > 1 {
		return DefaultRuleConfidence
	}
	return r.Confidence
}
