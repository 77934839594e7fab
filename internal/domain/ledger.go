package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostedLine is a journal line joined with its entry, as read back from
// the store for ledger aggregation. Settled marks receivable/payable
// lines that have been cleared by a later payment.
type PostedLine struct {
	EntryID     string
	EntryNumber int64
	Date        time.Time
	Description string
	AccountID   string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Settled     bool
}

// SignedAmount returns the line's effect on an account of the given
// type: positive grows the balance on its normal side.
func (l *PostedLine) SignedAmount(accountType AccountType) decimal.Decimal {
	if accountType.DebitNormal() {
		return l.Debit.Sub(l.Credit)
	}
	return l.Credit.Sub(l.Debit)
}

// LedgerLine is one step of a running-balance fold.
type LedgerLine struct {
	Date           time.Time
	EntryID        string
	Description    string
	Amount         decimal.Decimal // signed: positive increases the balance
	RunningBalance decimal.Decimal
}

// LedgerView is a derived, account-scoped view of postings. It is
// recomputed per query and never cached.
type LedgerView struct {
	AccountID      string
	From           time.Time
	To             time.Time
	OpeningBalance decimal.Decimal
	Lines          []LedgerLine
	ClosingBalance decimal.Decimal
}

// AgingReport buckets open (unsettled) amounts by elapsed days since the
// transaction date, as of AsOf.
type AgingReport struct {
	AccountID  string
	AsOf       time.Time
	Current    decimal.Decimal // 0-30 days
	Days31to60 decimal.Decimal
	Days61to90 decimal.Decimal
	Over90     decimal.Decimal
}

// Total returns the sum of all buckets.
func (r *AgingReport) Total() decimal.Decimal {
	return r.Current.Add(r.Days31to60).Add(r.Days61to90).Add(r.Over90)
}

// PaymentSchedule projects unsettled balances onto expected due dates,
// bucketed by calendar boundaries computed from AsOf.
type PaymentSchedule struct {
	AccountID string
	AsOf      time.Time
	TermDays  int
	ThisWeek  decimal.Decimal
	NextWeek  decimal.Decimal
	ThisMonth decimal.Decimal
	NextMonth decimal.Decimal
	Later     decimal.Decimal
}
