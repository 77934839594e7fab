package statement

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// Fallback header names tried when no template maps a field. Bilingual:
// Japanese bank exports and English card exports both appear in practice.
var (
	dateFallbacks        = []string{"日付", "取引日", "年月日", "取引年月日", "利用日", "date", "Date", "DATE"}
	descriptionFallbacks = []string{"摘要", "内容", "取引内容", "利用店名・商品名", "description", "Description", "memo", "備考"}
	amountFallbacks      = []string{"金額", "利用金額", "取引金額", "amount", "Amount"}
	depositFallbacks     = []string{"入金", "入金額", "預入", "deposit", "credit"}
	withdrawalFallbacks  = []string{"出金", "出金額", "引出", "withdrawal", "debit"}
	typeFallbacks        = []string{"区分", "種別", "取引区分", "type", "Type"}
	balanceFallbacks     = []string{"残高", "差引残高", "balance", "Balance"}
)

// Type-column vocabulary deciding direction when the amount is unsigned.
// The bare tokens "in"/"out" are matched exactly in directionFromType;
// as substrings they would collide with the longer keywords.
var (
	incomeKeywords  = []string{"入金", "振込入金", "預入", "収入", "deposit", "credit", "incoming"}
	expenseKeywords = []string{"出金", "引落", "引出", "支払", "支出", "withdrawal", "debit", "outgoing"}
)

// RowError is a recoverable per-row normalization failure. The row is
// skipped and reported; the batch continues.
type RowError struct {
	RowIndex int
	Field    string
	Reason   string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %s", e.RowIndex+1, e.Field, e.Reason)
}

// Normalizer maps raw statement rows onto canonical transactions using
// the matched template, falling back to common header names. It holds
// only read-only configuration and is safe for concurrent use.
type Normalizer struct {
	Template   *domain.Template // nil means fallbacks only
	DateFormat string
	// Concurrency bounds the parallel workers in NormalizeAll.
	// Zero means a small default.
	Concurrency int
}

// NormalizeRow extracts one transaction from a raw row. Rows missing a
// parseable date or a non-empty description fail; a zero amount does not.
func (n *Normalizer) NormalizeRow(row domain.RawRow, index int) (*domain.NormalizedTransaction, *RowError) {
	dateCell, ok := n.lookup(row, n.templateColumn(func(t *domain.Template) string { return t.DateColumn }), dateFallbacks)
	if !ok || strings.TrimSpace(dateCell) == "" {
		return nil, &RowError{RowIndex: index, Field: "date", Reason: "missing required field"}
	}
	date, err := ParseDate(dateCell, n.DateFormat)
	if err != nil {
		return nil, &RowError{RowIndex: index, Field: "date", Reason: err.Error()}
	}

	desc, ok := n.lookup(row, n.templateColumn(func(t *domain.Template) string { return t.DescriptionColumn }), descriptionFallbacks)
	desc = strings.TrimSpace(SanitizeCell(desc))
	if !ok || desc == "" {
		return nil, &RowError{RowIndex: index, Field: "description", Reason: "missing required field"}
	}

	amount, direction := n.extractAmount(row)

	tx := &domain.NormalizedTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Direction:   direction,
		RowIndex:    index,
		SourceRow:   row,
	}

	if balanceCell, ok := n.lookup(row, n.templateColumn(func(t *domain.Template) string { return t.BalanceColumn }), balanceFallbacks); ok {
		if strings.TrimSpace(balanceCell) != "" {
			b := ParseAmount(balanceCell)
			tx.Balance = &b
		}
	}

	return tx, nil
}

// extractAmount resolves the amount and direction in one of two modes:
// separate deposit/withdrawal columns, or a single signed amount column
// optionally overridden by a type column.
func (n *Normalizer) extractAmount(row domain.RawRow) (amount decimal.Decimal, direction domain.Direction) {
	depositCell, hasDeposit := n.lookup(row, n.templateColumn(func(t *domain.Template) string { return t.DepositColumn }), depositFallbacks)
	withdrawalCell, hasWithdrawal := n.lookup(row, n.templateColumn(func(t *domain.Template) string { return t.WithdrawalColumn }), withdrawalFallbacks)

	if hasDeposit || hasWithdrawal {
		deposit := ParseAmount(depositCell)
		withdrawal := ParseAmount(withdrawalCell)
		switch {
		case deposit.IsPositive():
			return deposit, domain.DirectionIncome
		case withdrawal.IsPositive():
			return withdrawal, domain.DirectionExpense
		}
		// Fall through to the single-column mode when neither side is set.
	}

	amountCell, _ := n.lookup(row, n.templateColumn(func(t *domain.Template) string { return t.AmountColumn }), amountFallbacks)
	signed := ParseAmount(amountCell)

	direction = domain.DirectionUnknown
	switch {
	case signed.IsNegative():
		direction = domain.DirectionExpense
	case signed.IsPositive():
		direction = domain.DirectionIncome
	}

	// An explicit type column overrides the sign.
	if typeCell, ok := n.lookup(row, n.templateColumn(func(t *domain.Template) string { return t.TypeColumn }), typeFallbacks); ok {
		if d := directionFromType(typeCell); d != domain.DirectionUnknown {
			direction = d
		}
	}

	return signed.Abs(), direction
}

// NormalizeAll processes rows in parallel, preserving input order in the
// output. Per-row failures are collected, never aborting the batch.
func (n *Normalizer) NormalizeAll(ctx context.Context, rows []domain.RawRow) ([]*domain.NormalizedTransaction, []RowError) {
	results := make([]*domain.NormalizedTransaction, len(rows))
	var mu sync.Mutex
	var failures []RowError

	g, ctx := errgroup.WithContext(ctx)
	limit := n.Concurrency
	if limit <= 0 {
		limit = 8
	}
	g.SetLimit(limit)

	for i, row := range rows {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			tx, rowErr := n.NormalizeRow(row, i)
			if rowErr != nil {
				mu.Lock()
				failures = append(failures, *rowErr)
				mu.Unlock()
				return nil
			}
			results[i] = tx
			return nil
		})
	}
	// Workers only return context errors; per-row failures never abort.
	_ = g.Wait()

	out := make([]*domain.NormalizedTransaction, 0, len(rows))
	for _, tx := range results {
		if tx != nil {
			out = append(out, tx)
		}
	}
	sort.Slice(failures, func(a, b int) bool { return failures[a].RowIndex < failures[b].RowIndex })
	return out, failures
}

// RowsFromDecoded zips header names onto decoded cells. Without a header
// the columns are named by position (col0, col1, ...).
func RowsFromDecoded(d *Decoded) []domain.RawRow {
	rows := make([]domain.RawRow, 0, len(d.Rows))
	for _, record := range d.Rows {
		row := make(domain.RawRow, len(record))
		for i, cell := range record {
			var key string
			if i < len(d.Header) && d.Header[i] != "" {
				key = d.Header[i]
			} else {
				key = fmt.Sprintf("col%d", i)
			}
			row[key] = cell
		}
		rows = append(rows, row)
	}
	return rows
}

func (n *Normalizer) templateColumn(get func(*domain.Template) string) string {
	if n.Template == nil {
		return ""
	}
	return get(n.Template)
}

// lookup finds a cell by the mapped column first, then fallbacks.
func (n *Normalizer) lookup(row domain.RawRow, mapped string, fallbacks []string) (string, bool) {
	if mapped != "" {
		if v, ok := row[mapped]; ok {
			return v, true
		}
	}
	for _, name := range fallbacks {
		if v, ok := row[name]; ok {
			return v, true
		}
	}
	return "", false
}

func directionFromType(cell string) domain.Direction {
	cell = strings.ToLower(strings.TrimSpace(cell))
	switch cell {
	case "":
		return domain.DirectionUnknown
	case "in":
		return domain.DirectionIncome
	case "out":
		return domain.DirectionExpense
	}
	for _, kw := range incomeKeywords {
		if strings.Contains(cell, kw) {
			return domain.DirectionIncome
		}
	}
	for _, kw := range expenseKeywords {
		if strings.Contains(cell, kw) {
			return domain.DirectionExpense
		}
	}
	return domain.DirectionUnknown
}
