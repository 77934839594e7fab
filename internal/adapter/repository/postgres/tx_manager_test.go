package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

func TestTxManagerCommitsJournalEntry(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectQuery("INSERT INTO journal_entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"entry_number"}).AddRow(int64(42)))
	mockPool.ExpectExec("INSERT INTO journal_lines").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec("INSERT INTO journal_lines").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectCommit()

	manager := newTxManagerWithPool(mockPool)
	ctx := context.Background()

	tx, err := manager.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	entry := draftSalaryEntry()
	repo := NewJournalRepository(nil)
	if err := repo.Create(ctx, tx, entry); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if entry.EntryNumber != 42 {
		t.Fatalf("expected assigned entry number 42, got %d", entry.EntryNumber)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestTxManagerRollsBackFailedEntry(t *testing.T) {
	mockPool := newMockPool(t)
	insertErr := errors.New("insert failed")
	mockPool.ExpectBegin()
	mockPool.ExpectQuery("INSERT INTO journal_entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(insertErr)
	mockPool.ExpectRollback()

	manager := newTxManagerWithPool(mockPool)
	ctx := context.Background()

	tx, err := manager.Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	repo := NewJournalRepository(nil)
	if err := repo.Create(ctx, tx, draftSalaryEntry()); !errors.Is(err, insertErr) {
		t.Fatalf("expected insert error, got %v", err)
	}

	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestTxManagerBeginError(t *testing.T) {
	mockPool := newMockPool(t)
	mockErr := errors.New("begin failed")
	mockPool.ExpectBegin().WillReturnError(mockErr)

	manager := newTxManagerWithPool(mockPool)
	tx, err := manager.Begin(context.Background())
	if err == nil || !errors.Is(err, mockErr) {
		t.Fatalf("expected begin error, got err=%v tx=%v", err, tx)
	}
}

func draftSalaryEntry() *domain.JournalEntry {
	now := time.Now().UTC()
	return &domain.JournalEntry{
		ID:          "entry-1",
		Date:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Description: "給与振込",
		Status:      domain.StatusDraft,
		Lines: []domain.JournalLine{
			{LineNumber: 1, AccountID: "acc-cash", Debit: decimal.NewFromInt(200000)},
			{LineNumber: 2, AccountID: "acc-sales", Credit: decimal.NewFromInt(200000)},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}
