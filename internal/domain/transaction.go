package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the money flow of a normalized statement row.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
	DirectionUnknown Direction = "unknown"
)

// RawRow is one undigested statement line, keyed by source column name.
// It lives only for the duration of an import session.
type RawRow map[string]string

// NormalizedTransaction is a statement row after decoding, sanitization
// and field extraction. Immutable once produced by the normalizer.
type NormalizedTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // non-negative; Direction carries the sign
	Direction   Direction
	Balance     *decimal.Decimal // running balance if the statement had one
	RowIndex    int              // position in the source file, 0-based
	SourceRow   RawRow           // audit back-reference, never owned
}

// AccountSuggestion is a candidate debit/credit pair for a normalized
// transaction, with the confidence and origin of whatever produced it.
type AccountSuggestion struct {
	DebitAccountID  string
	CreditAccountID string
	Confidence      float64
	Origin          string
}
