package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateCode      = errors.New("account code already exists")
	ErrUnknownAccountType = errors.New("unknown account type")

	// Journal entry errors
	ErrEntryNotFound      = errors.New("journal entry not found")
	ErrUnbalancedEntry    = errors.New("journal entry is not balanced: debits do not equal credits")
	ErrEmptyEntry         = errors.New("journal entry must have at least two lines")
	ErrInvalidLine        = errors.New("journal line must have exactly one non-zero side")
	ErrNegativeLineAmount = errors.New("journal line amounts must not be negative")
	ErrLineNumberGap      = errors.New("journal line numbers must be dense and unique")
	ErrEntryNotDraft      = errors.New("only draft entries can be modified")
	ErrInvalidTransition  = errors.New("invalid status transition")

	// Import rule errors
	ErrRuleNotFound       = errors.New("import rule not found")
	ErrInvalidRulePattern = errors.New("invalid import rule pattern")
)
