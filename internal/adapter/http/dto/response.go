package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account.
type AccountResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsActive bool   `json:"is_active"`
}

// AccountFromDomain converts a domain account.
func AccountFromDomain(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Code:     a.Code,
		Name:     a.Name,
		Type:     string(a.Type),
		IsActive: a.IsActive,
	}
}

// AccountsFromDomain converts a slice of domain accounts.
func AccountsFromDomain(accounts []*domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountFromDomain(a))
	}
	return out
}

// RuleResponse represents an import rule.
type RuleResponse struct {
	ID              string  `json:"id"`
	Pattern         string  `json:"pattern"`
	DebitAccountID  string  `json:"debit_account_id"`
	CreditAccountID string  `json:"credit_account_id"`
	Confidence      float64 `json:"confidence"`
	Priority        int     `json:"priority"`
	IsActive        bool    `json:"is_active"`
}

// RuleFromDomain converts a domain rule.
func RuleFromDomain(r *domain.ImportRule) RuleResponse {
	return RuleResponse{
		ID:              r.ID,
		Pattern:         r.Pattern,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
		Confidence:      r.Confidence,
		Priority:        r.Priority,
		IsActive:        r.IsActive,
	}
}

// RulesFromDomain converts a slice of domain rules.
func RulesFromDomain(rules []*domain.ImportRule) []RuleResponse {
	out := make([]RuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleFromDomain(r))
	}
	return out
}

// LineResponse represents a journal line.
type LineResponse struct {
	AccountID   string          `json:"account_id"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	LineNumber  int             `json:"line_number"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse represents a journal entry.
type EntryResponse struct {
	ID          string         `json:"id"`
	EntryNumber int64          `json:"entry_number"`
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Lines       []LineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// EntryFromDomain converts a domain entry.
func EntryFromDomain(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		ID:          e.ID,
		EntryNumber: e.EntryNumber,
		Date:        e.Date.Format(requestDateLayout),
		Description: e.Description,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, LineResponse{
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			LineNumber:  line.LineNumber,
			Description: line.Description,
		})
	}
	return resp
}

// EntriesFromDomain converts a slice of domain entries.
func EntriesFromDomain(entries []*domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryFromDomain(e))
	}
	return out
}

// PreviewRowResponse is one row of an import preview.
type PreviewRowResponse struct {
	RowIndex    int                 `json:"row_index"`
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"`
	Direction   string              `json:"direction"`
	Balance     *decimal.Decimal    `json:"balance,omitempty"`
	Suggestion  *SuggestionResponse `json:"suggestion,omitempty"`
	Duplicate   bool                `json:"duplicate"`
	Unmapped    bool                `json:"unmapped"`
}

// SuggestionResponse is a candidate account pair.
type SuggestionResponse struct {
	DebitAccountID  string  `json:"debit_account_id"`
	CreditAccountID string  `json:"credit_account_id"`
	Confidence      float64 `json:"confidence"`
	Origin          string  `json:"origin"`
}

// RowFailureResponse reports a skipped row.
type RowFailureResponse struct {
	RowIndex int    `json:"row_index"`
	Field    string `json:"field"`
	Reason   string `json:"reason"`
}

// ImportPreviewResponse is the full preview result.
type ImportPreviewResponse struct {
	Rows              []PreviewRowResponse `json:"rows"`
	Failures          []RowFailureResponse `json:"failures,omitempty"`
	TemplateName      string               `json:"template_name,omitempty"`
	Encoding          string               `json:"encoding"`
	EncodingAmbiguous bool                 `json:"encoding_ambiguous"`
	Truncated         bool                 `json:"truncated"`
}

// PreviewFromUsecase converts a usecase preview.
func PreviewFromUsecase(p *usecase.ImportPreview) ImportPreviewResponse {
	resp := ImportPreviewResponse{
		Rows:              make([]PreviewRowResponse, 0, len(p.Rows)),
		TemplateName:      p.TemplateName,
		Encoding:          string(p.Encoding),
		EncodingAmbiguous: p.EncodingAmbiguous,
		Truncated:         p.Truncated,
	}
	for _, row := range p.Rows {
		r := PreviewRowResponse{
			RowIndex:    row.Transaction.RowIndex,
			Date:        row.Transaction.Date.Format(requestDateLayout),
			Description: row.Transaction.Description,
			Amount:      row.Transaction.Amount,
			Direction:   string(row.Transaction.Direction),
			Balance:     row.Transaction.Balance,
			Duplicate:   row.Duplicate,
			Unmapped:    row.Unmapped,
		}
		if row.Suggestion != nil {
			r.Suggestion = &SuggestionResponse{
				DebitAccountID:  row.Suggestion.DebitAccountID,
				CreditAccountID: row.Suggestion.CreditAccountID,
				Confidence:      row.Suggestion.Confidence,
				Origin:          row.Suggestion.Origin,
			}
		}
		resp.Rows = append(resp.Rows, r)
	}
	for _, f := range p.Failures {
		resp.Failures = append(resp.Failures, RowFailureResponse{
			RowIndex: f.RowIndex,
			Field:    f.Field,
			Reason:   f.Reason,
		})
	}
	return resp
}

// CommitResponse reports a commit outcome.
type CommitResponse struct {
	EntryIDs []string                `json:"entry_ids"`
	Failures []CommitFailureResponse `json:"failures,omitempty"`
}

// CommitFailureResponse is one rejected commit row.
type CommitFailureResponse struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
}

// LedgerLineResponse is one running-balance step.
type LedgerLineResponse struct {
	Date           string          `json:"date"`
	EntryID        string          `json:"entry_id"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// LedgerResponse is an account-scoped ledger view.
type LedgerResponse struct {
	AccountID      string               `json:"account_id"`
	OpeningBalance decimal.Decimal      `json:"opening_balance"`
	Lines          []LedgerLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal      `json:"closing_balance"`
}

// LedgerFromDomain converts a domain ledger view.
func LedgerFromDomain(v *domain.LedgerView) LedgerResponse {
	resp := LedgerResponse{
		AccountID:      v.AccountID,
		OpeningBalance: v.OpeningBalance,
		Lines:          make([]LedgerLineResponse, 0, len(v.Lines)),
		ClosingBalance: v.ClosingBalance,
	}
	for _, line := range v.Lines {
		resp.Lines = append(resp.Lines, LedgerLineResponse{
			Date:           line.Date.Format(requestDateLayout),
			EntryID:        line.EntryID,
			Description:    line.Description,
			Amount:         line.Amount,
			RunningBalance: line.RunningBalance,
		})
	}
	return resp
}

// AgingResponse is an aging bucket report.
type AgingResponse struct {
	AccountID  string          `json:"account_id"`
	AsOf       string          `json:"as_of"`
	Current    decimal.Decimal `json:"current"`
	Days31to60 decimal.Decimal `json:"days_31_60"`
	Days61to90 decimal.Decimal `json:"days_61_90"`
	Over90     decimal.Decimal `json:"over_90"`
	Total      decimal.Decimal `json:"total"`
}

// AgingFromDomain converts a domain aging report.
func AgingFromDomain(r *domain.AgingReport) AgingResponse {
	return AgingResponse{
		AccountID:  r.AccountID,
		AsOf:       r.AsOf.Format(requestDateLayout),
		Current:    r.Current,
		Days31to60: r.Days31to60,
		Days61to90: r.Days61to90,
		Over90:     r.Over90,
		Total:      r.Total(),
	}
}

// ScheduleResponse is a payment-schedule projection.
type ScheduleResponse struct {
	AccountID string          `json:"account_id"`
	AsOf      string          `json:"as_of"`
	TermDays  int             `json:"term_days"`
	ThisWeek  decimal.Decimal `json:"this_week"`
	NextWeek  decimal.Decimal `json:"next_week"`
	ThisMonth decimal.Decimal `json:"this_month"`
	NextMonth decimal.Decimal `json:"next_month"`
	Later     decimal.Decimal `json:"later"`
}

// ScheduleFromDomain converts a domain payment schedule.
func ScheduleFromDomain(s *domain.PaymentSchedule) ScheduleResponse {
	return ScheduleResponse{
		AccountID: s.AccountID,
		AsOf:      s.AsOf.Format(requestDateLayout),
		TermDays:  s.TermDays,
		ThisWeek:  s.ThisWeek,
		NextWeek:  s.NextWeek,
		ThisMonth: s.ThisMonth,
		NextMonth: s.NextMonth,
		Later:     s.Later,
	}
}
