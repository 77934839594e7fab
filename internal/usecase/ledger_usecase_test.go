package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase/mocks"
)

func ledgerFixture(termDays int, lines, openLines []*domain.PostedLine) *usecase.LedgerUseCase {
	accountRepo := mocks.NewMockAccountRepository()
	accountRepo.Seed(
		&domain.Account{ID: "acc-cash", Code: "101", Name: "普通預金", Type: domain.AccountTypeAsset, IsActive: true},
		&domain.Account{ID: "acc-ap", Code: "301", Name: "買掛金", Type: domain.AccountTypeLiability, IsActive: true},
	)
	ledgerRepo := &mocks.MockLedgerRepository{Lines: lines, OpenLines: openLines}
	return usecase.NewLedgerUseCase(ledgerRepo, accountRepo, termDays, nil)
}

func postedLine(accountID string, date time.Time, debit, credit int64) *domain.PostedLine {
	return &domain.PostedLine{
		EntryID:   "e-" + date.Format("0102"),
		Date:      date,
		AccountID: accountID,
		Debit:     decimal.NewFromInt(debit),
		Credit:    decimal.NewFromInt(credit),
	}
}

func TestLedgerUseCase_GetLedger_RunningBalance(t *testing.T) {
	apr := func(day int) time.Time { return time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC) }
	uc := ledgerFixture(30, []*domain.PostedLine{
		postedLine("acc-cash", apr(1), 200000, 0),
		postedLine("acc-cash", apr(5), 0, 8500),
		postedLine("acc-cash", apr(20), 50000, 0),
	}, nil)

	view, err := uc.GetLedger(context.Background(), "acc-cash", apr(1), apr(30), decimal.NewFromInt(10000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !view.OpeningBalance.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("opening balance: got %s", view.OpeningBalance)
	}
	want := []int64{210000, 201500, 251500}
	if len(view.Lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(view.Lines))
	}
	for i, balance := range want {
		if !view.Lines[i].RunningBalance.Equal(decimal.NewFromInt(balance)) {
			t.Errorf("line %d: running balance got %s, want %d", i, view.Lines[i].RunningBalance, balance)
		}
	}
	if !view.ClosingBalance.Equal(decimal.NewFromInt(251500)) {
		t.Errorf("closing balance: got %s", view.ClosingBalance)
	}
}

func TestLedgerUseCase_GetLedger_CreditNormalAccount(t *testing.T) {
	apr := func(day int) time.Time { return time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC) }
	// For a liability a credit grows the balance and a debit shrinks it.
	uc := ledgerFixture(30, []*domain.PostedLine{
		postedLine("acc-ap", apr(1), 0, 30000),
		postedLine("acc-ap", apr(10), 30000, 0),
	}, nil)

	view, err := uc.GetLedger(context.Background(), "acc-ap", apr(1), apr(30), decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.Lines[0].Amount.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("credit to a liability must be positive, got %s", view.Lines[0].Amount)
	}
	if !view.ClosingBalance.IsZero() {
		t.Errorf("paid-off balance must be zero, got %s", view.ClosingBalance)
	}
}

func TestLedgerUseCase_GetLedger_UnknownAccount(t *testing.T) {
	uc := ledgerFixture(30, nil, nil)
	_, err := uc.GetLedger(context.Background(), "missing", time.Now(), time.Now(), decimal.Zero)
	if err == nil {
		t.Fatal("expected error for unknown account")
	}
}

func TestLedgerUseCase_GetAging(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	uc := ledgerFixture(30, nil, []*domain.PostedLine{
		postedLine("acc-ap", asOf.AddDate(0, 0, -10), 0, 1000),  // 0-30
		postedLine("acc-ap", asOf.AddDate(0, 0, -30), 0, 2000),  // boundary, still current
		postedLine("acc-ap", asOf.AddDate(0, 0, -45), 0, 3000),  // 31-60
		postedLine("acc-ap", asOf.AddDate(0, 0, -75), 0, 4000),  // 61-90
		postedLine("acc-ap", asOf.AddDate(0, 0, -120), 0, 5000), // 90+
	}).WithClock(func() time.Time { return asOf })

	report, err := uc.GetAging(context.Background(), "acc-ap")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want int64
	}{
		{"current", report.Current, 3000},
		{"31-60", report.Days31to60, 3000},
		{"61-90", report.Days61to90, 4000},
		{"over 90", report.Over90, 5000},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s bucket: got %s, want %d", c.name, c.got, c.want)
		}
	}
	if !report.Total().Equal(decimal.NewFromInt(15000)) {
		t.Errorf("total: got %s", report.Total())
	}
}

func TestLedgerUseCase_GetPaymentSchedule(t *testing.T) {
	// Monday 2024-06-10; the week runs through Sunday 2024-06-16.
	asOf := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	term := 90
	// Due date is the transaction date plus the term.
	txFor := func(due time.Time, amount int64) *domain.PostedLine {
		return postedLine("acc-ap", due.AddDate(0, 0, -term), 0, amount)
	}
	uc := ledgerFixture(term, nil, []*domain.PostedLine{
		txFor(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), 100),  // this week
		txFor(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 200),   // overdue, folded into this week
		txFor(time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC), 300),  // next week
		txFor(time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC), 400),  // later this month
		txFor(time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), 500),  // next month
		txFor(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), 600),   // later
	}).WithClock(func() time.Time { return asOf })

	schedule, err := uc.GetPaymentSchedule(context.Background(), "acc-ap")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want int64
	}{
		{"this week", schedule.ThisWeek, 300},
		{"next week", schedule.NextWeek, 300},
		{"this month", schedule.ThisMonth, 400},
		{"next month", schedule.NextMonth, 500},
		{"later", schedule.Later, 600},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s bucket: got %s, want %d", c.name, c.got, c.want)
		}
	}
	if schedule.TermDays != term {
		t.Errorf("term days: got %d", schedule.TermDays)
	}
}
