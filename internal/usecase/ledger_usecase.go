package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/infrastructure/metrics"
)

// LedgerUseCase replays posted journal lines into subsidiary ledger
// views: running balance, aging buckets and payment-schedule
// projections. All aggregation is pure and recomputed per call; no
// balance state is cached across requests.
type LedgerUseCase struct {
	ledgerRepo  LedgerRepository
	accountRepo AccountRepository
	termDays    int
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository, accountRepo AccountRepository, termDays int, m *metrics.Metrics) *LedgerUseCase {
	if termDays <= 0 {
		termDays = DefaultPaymentTermDays
	}
	return &LedgerUseCase{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		termDays:    termDays,
		metrics:     m,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (uc *LedgerUseCase) record(kind string, start time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.LedgerQueries.WithLabelValues(kind).Inc()
	uc.metrics.LedgerDuration.Observe(time.Since(start).Seconds())
}

// WithClock overrides the time source, for tests.
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// aggregatedStatuses: ledger reads committed data only; a draft entry is
// not yet part of any balance.
var aggregatedStatuses = []domain.EntryStatus{domain.StatusApproved}

// GetLedger folds the account's posted lines left to right into a
// running balance starting from the supplied opening balance.
func (uc *LedgerUseCase) GetLedger(ctx context.Context, accountID string, from, to time.Time, openingBalance decimal.Decimal) (*domain.LedgerView, error) {
	defer uc.record("ledger", time.Now())

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.ledgerRepo.LinesByAccount(ctx, accountID, from, to, aggregatedStatuses)
	if err != nil {
		return nil, err
	}

	view := &domain.LedgerView{
		AccountID:      accountID,
		From:           from,
		To:             to,
		OpeningBalance: openingBalance,
		Lines:          make([]domain.LedgerLine, 0, len(lines)),
	}

	balance := openingBalance
	for _, line := range lines {
		amount := line.SignedAmount(account.Type)
		balance = balance.Add(amount)
		view.Lines = append(view.Lines, domain.LedgerLine{
			Date:           line.Date,
			EntryID:        line.EntryID,
			Description:    line.Description,
			Amount:         amount,
			RunningBalance: balance,
		})
	}
	view.ClosingBalance = balance

	return view, nil
}

// GetAging buckets the account's open lines by elapsed days since the
// transaction date: 0-30, 31-60, 61-90, 90+.
func (uc *LedgerUseCase) GetAging(ctx context.Context, accountID string) (*domain.AgingReport, error) {
	defer uc.record("aging", time.Now())

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	asOf := uc.now()
	lines, err := uc.ledgerRepo.OpenLinesByAccount(ctx, accountID, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.AgingReport{AccountID: accountID, AsOf: asOf}
	for _, line := range lines {
		amount := line.SignedAmount(account.Type)
		switch age := daysBetween(line.Date, asOf); {
		case age <= 30:
			report.Current = report.Current.Add(amount)
		case age <= 60:
			report.Days31to60 = report.Days31to60.Add(amount)
		case age <= 90:
			report.Days61to90 = report.Days61to90.Add(amount)
		default:
			report.Over90 = report.Over90.Add(amount)
		}
	}
	return report, nil
}

// GetPaymentSchedule projects the account's open balance onto expected
// due dates (transaction date + fixed term) and buckets them by calendar
// boundaries computed from today.
func (uc *LedgerUseCase) GetPaymentSchedule(ctx context.Context, accountID string) (*domain.PaymentSchedule, error) {
	defer uc.record("schedule", time.Now())

	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	asOf := uc.now()
	lines, err := uc.ledgerRepo.OpenLinesByAccount(ctx, accountID, asOf)
	if err != nil {
		return nil, err
	}

	schedule := &domain.PaymentSchedule{AccountID: accountID, AsOf: asOf, TermDays: uc.termDays}
	for _, line := range lines {
		amount := line.SignedAmount(account.Type)
		due := line.Date.AddDate(0, 0, uc.termDays)
		switch scheduleBucket(due, asOf) {
		case bucketThisWeek:
			schedule.ThisWeek = schedule.ThisWeek.Add(amount)
		case bucketNextWeek:
			schedule.NextWeek = schedule.NextWeek.Add(amount)
		case bucketThisMonth:
			schedule.ThisMonth = schedule.ThisMonth.Add(amount)
		case bucketNextMonth:
			schedule.NextMonth = schedule.NextMonth.Add(amount)
		default:
			schedule.Later = schedule.Later.Add(amount)
		}
	}
	return schedule, nil
}

type bucket int

const (
	bucketThisWeek bucket = iota
	bucketNextWeek
	bucketThisMonth
	bucketNextMonth
	bucketLater
)

// scheduleBucket places a due date relative to today's calendar. Overdue
// amounts land in this week.
func scheduleBucket(due, asOf time.Time) bucket {
	due = truncateDay(due)
	today := truncateDay(asOf)

	weekStart := startOfWeek(today)
	nextWeekStart := weekStart.AddDate(0, 0, 7)
	weekAfterNextStart := weekStart.AddDate(0, 0, 14)

	switch {
	case due.Before(nextWeekStart):
		return bucketThisWeek
	case due.Before(weekAfterNextStart):
		return bucketNextWeek
	}

	if due.Year() == today.Year() && due.Month() == today.Month() {
		return bucketThisMonth
	}
	nextMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if due.Year() == nextMonth.Year() && due.Month() == nextMonth.Month() {
		return bucketNextMonth
	}
	return bucketLater
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(truncateDay(to).Sub(truncateDay(from)).Hours() / 24)
}
