package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

const requestDateLayout = "2006-01-02"

// ImportPreviewRequest carries one uploaded statement. Data is the raw
// file content, base64-encoded by the client.
type ImportPreviewRequest struct {
	Data       string `json:"data"`
	Encoding   string `json:"encoding"`
	Delimiter  string `json:"delimiter"`
	HasHeaders bool   `json:"has_headers"`
	SkipRows   int    `json:"skip_rows"`
	MaxRows    int    `json:"max_rows"`
	DateFormat string `json:"date_format"`
}

// ImportCommitRequest posts human-confirmed rows.
type ImportCommitRequest struct {
	Rows []CommitRowRequest `json:"rows"`
}

// CommitRowRequest is one confirmed row.
type CommitRowRequest struct {
	Date            string `json:"date"`
	Description     string `json:"description"`
	DebitAccountID  string `json:"debit_account_id"`
	CreditAccountID string `json:"credit_account_id"`
	Amount          string `json:"amount"`
}

// ToUsecase converts the commit request, validating dates and amounts.
func (r *ImportCommitRequest) ToUsecase() ([]usecase.CommitRow, error) {
	rows := make([]usecase.CommitRow, 0, len(r.Rows))
	for i, row := range r.Rows {
		date, err := time.Parse(requestDateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q", i, row.Date)
		}
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q", i, row.Amount)
		}
		rows = append(rows, usecase.CommitRow{
			Date:            date,
			Description:     row.Description,
			DebitAccountID:  row.DebitAccountID,
			CreditAccountID: row.CreditAccountID,
			Amount:          amount,
		})
	}
	return rows, nil
}

// CreateEntryRequest creates a draft journal entry.
type CreateEntryRequest struct {
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Lines       []LineRequest `json:"lines"`
}

// LineRequest is one journal line.
type LineRequest struct {
	AccountID   string `json:"account_id"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	LineNumber  int    `json:"line_number"`
	Description string `json:"description"`
}

// ReplaceLinesRequest swaps the line set of a draft entry.
type ReplaceLinesRequest struct {
	Lines []LineRequest `json:"lines"`
}

// ToDomain converts request lines, validating amounts.
func LinesToDomain(lines []LineRequest) ([]domain.JournalLine, error) {
	out := make([]domain.JournalLine, 0, len(lines))
	for i, line := range lines {
		debit, err := parseAmountField(line.Debit)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid debit %q", i, line.Debit)
		}
		credit, err := parseAmountField(line.Credit)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid credit %q", i, line.Credit)
		}
		out = append(out, domain.JournalLine{
			AccountID:   line.AccountID,
			Debit:       debit,
			Credit:      credit,
			LineNumber:  line.LineNumber,
			Description: line.Description,
		})
	}
	return out, nil
}

func parseAmountField(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// ParseEntryDate parses the request date format.
func ParseEntryDate(s string) (time.Time, error) {
	return time.Parse(requestDateLayout, s)
}

// CreateAccountRequest creates a chart-of-accounts entry.
type CreateAccountRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// CreateRuleRequest creates an import rule.
type CreateRuleRequest struct {
	Pattern         string  `json:"pattern"`
	DebitAccountID  string  `json:"debit_account_id"`
	CreditAccountID string  `json:"credit_account_id"`
	Confidence      float64 `json:"confidence"`
	Priority        int     `json:"priority"`
}
