package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// JournalUseCase handles journal entry lifecycle: creation, draft line
// edits, approval and cancellation. Every mutation enforces the
// double-entry invariant before anything is persisted.
type JournalUseCase struct {
	journalRepo JournalRepository
	txManager   TransactionManager
	idGen       IDGenerator
	now         func() time.Time
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(journalRepo JournalRepository, txManager TransactionManager, idGen IDGenerator) *JournalUseCase {
	return &JournalUseCase{
		journalRepo: journalRepo,
		txManager:   txManager,
		idGen:       idGen,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source, for tests.
func (uc *JournalUseCase) WithClock(now func() time.Time) *JournalUseCase {
	uc.now = now
	return uc
}

// CreateEntryInput represents input for creating a draft entry.
type CreateEntryInput struct {
	Date        time.Time
	Description string
	Lines       []domain.JournalLine
}

// CreateEntry validates and persists a new draft entry atomically.
func (uc *JournalUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.JournalEntry, error) {
	entry, err := domain.NewJournalEntry(uc.idGen.Generate(), input.Date, input.Description, input.Lines)
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = uc.now()
	entry.UpdatedAt = entry.CreatedAt

	if err := uc.persist(ctx, func(tx Transaction) error {
		return uc.journalRepo.Create(ctx, tx, entry)
	}); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetEntry retrieves an entry by ID.
func (uc *JournalUseCase) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.journalRepo.GetByID(ctx, id)
}

// ListEntries lists entries with pagination.
func (uc *JournalUseCase) ListEntries(ctx context.Context, filter JournalFilter) ([]*domain.JournalEntry, error) {
	filter.Limit = clampLimit(filter.Limit)
	return uc.journalRepo.List(ctx, filter)
}

// ReplaceLines swaps the line set of a draft entry. The new set must
// satisfy the invariant or nothing is written.
func (uc *JournalUseCase) ReplaceLines(ctx context.Context, id string, lines []domain.JournalLine) (*domain.JournalEntry, error) {
	return uc.mutate(ctx, id, func(entry *domain.JournalEntry) error {
		return entry.ReplaceLines(lines, uc.now())
	})
}

// ApproveEntry transitions a draft entry to approved. One-way.
func (uc *JournalUseCase) ApproveEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.mutate(ctx, id, func(entry *domain.JournalEntry) error {
		return entry.Approve(uc.now())
	})
}

// CancelEntry transitions a draft or approved entry to cancelled.
func (uc *JournalUseCase) CancelEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.mutate(ctx, id, func(entry *domain.JournalEntry) error {
		return entry.Cancel(uc.now())
	})
}

// mutate loads the entry, applies the change in memory, and persists the
// result atomically. A rejected change never reaches the store.
func (uc *JournalUseCase) mutate(ctx context.Context, id string, change func(*domain.JournalEntry) error) (*domain.JournalEntry, error) {
	entry, err := uc.journalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(entry); err != nil {
		return nil, err
	}
	if err := uc.persist(ctx, func(tx Transaction) error {
		return uc.journalRepo.Update(ctx, tx, entry)
	}); err != nil {
		return nil, err
	}
	return entry, nil
}

func (uc *JournalUseCase) persist(ctx context.Context, op func(Transaction) error) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := op(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
