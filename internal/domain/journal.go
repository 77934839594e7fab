package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the lifecycle status of a journal entry.
type EntryStatus string

const (
	StatusDraft     EntryStatus = "draft"
	StatusApproved  EntryStatus = "approved"
	StatusCancelled EntryStatus = "cancelled"
)

// JournalLine is one side of a posting within a journal entry.
// Exactly one of Debit/Credit is non-zero.
type JournalLine struct {
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	LineNumber  int
	Description string
}

// JournalEntry is a balanced double-entry posting.
type JournalEntry struct {
	ID          string
	EntryNumber int64
	Date        time.Time
	Description string
	Status      EntryStatus
	Lines       []JournalLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewJournalEntry creates a draft entry, validating the double-entry
// invariant. The lines are copied; the caller's slice is not retained.
func NewJournalEntry(id string, date time.Time, description string, lines []JournalLine) (*JournalEntry, error) {
	e := &JournalEntry{
		ID:          id,
		Date:        date,
		Description: description,
		Status:      StatusDraft,
		Lines:       append([]JournalLine(nil), lines...),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate enforces the double-entry invariant: total debits equal total
// credits, every line has exactly one non-zero side, and line numbers are
// dense and unique starting at 1.
func (e *JournalEntry) Validate() error {
	if len(e.Lines) < 2 {
		return ErrEmptyEntry
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	seen := make(map[int]bool, len(e.Lines))

	for _, line := range e.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return ErrNegativeLineAmount
		}
		debitSet := line.Debit.IsPositive()
		creditSet := line.Credit.IsPositive()
		if debitSet == creditSet {
			return ErrInvalidLine
		}
		if line.LineNumber < 1 || line.LineNumber > len(e.Lines) || seen[line.LineNumber] {
			return ErrLineNumberGap
		}
		seen[line.LineNumber] = true

		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return ErrUnbalancedEntry
	}
	return nil
}

// TotalDebit returns the sum of all debit amounts.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit returns the sum of all credit amounts.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// ReplaceLines swaps the line set of a draft entry. The new set must
// satisfy the invariant or the entry is left untouched.
func (e *JournalEntry) ReplaceLines(lines []JournalLine, now time.Time) error {
	if e.Status != StatusDraft {
		return ErrEntryNotDraft
	}

	candidate := *e
	candidate.Lines = append([]JournalLine(nil), lines...)
	if err := candidate.Validate(); err != nil {
		return err
	}

	e.Lines = candidate.Lines
	e.UpdatedAt = now
	return nil
}

// Approve transitions Draft -> Approved. The invariant must already hold.
func (e *JournalEntry) Approve(now time.Time) error {
	if e.Status != StatusDraft {
		return ErrInvalidTransition
	}
	if err := e.Validate(); err != nil {
		return err
	}
	e.Status = StatusApproved
	e.UpdatedAt = now
	return nil
}

// Cancel transitions Draft or Approved -> Cancelled. Cancelled is terminal.
func (e *JournalEntry) Cancel(now time.Time) error {
	if e.Status == StatusCancelled {
		return ErrInvalidTransition
	}
	e.Status = StatusCancelled
	e.UpdatedAt = now
	return nil
}
