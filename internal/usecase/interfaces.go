package usecase

import (
	"context"
	"time"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// AccountRepository defines data access for the chart of accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// ListActive returns the active chart of accounts. The pipeline
	// queries it once per run and treats the result as read-only.
	ListActive(ctx context.Context) ([]*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// RuleRepository defines data access for user-authored import rules.
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.ImportRule) error
	// ListActive returns active rules ordered by priority.
	ListActive(ctx context.Context) ([]*domain.ImportRule, error)
	List(ctx context.Context, limit, offset int) ([]*domain.ImportRule, error)
	Delete(ctx context.Context, id string) error
}

// TemplateRepository defines data access for column-layout templates.
type TemplateRepository interface {
	List(ctx context.Context) ([]*domain.Template, error)
}

// JournalFilter narrows journal entry listings.
type JournalFilter struct {
	From     time.Time
	To       time.Time
	Statuses []domain.EntryStatus
	Limit    int
	Offset   int
}

// JournalRepository defines data access for journal entries. Create and
// Update persist the entry and its full line set atomically.
type JournalRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	Update(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	List(ctx context.Context, filter JournalFilter) ([]*domain.JournalEntry, error)
	// ListByDateRange returns entries in the inclusive date range with
	// one of the given statuses, used by duplicate detection.
	ListByDateRange(ctx context.Context, from, to time.Time, statuses []domain.EntryStatus) ([]*domain.JournalEntry, error)
}

// LedgerRepository defines read access for ledger aggregation.
type LedgerRepository interface {
	// LinesByAccount returns posted lines touching the account within
	// the inclusive range, ordered by (date, entry number).
	LinesByAccount(ctx context.Context, accountID string, from, to time.Time, statuses []domain.EntryStatus) ([]*domain.PostedLine, error)
	// OpenLinesByAccount returns unsettled lines for the account dated
	// on or before asOf, for aging and payment-schedule projection.
	OpenLinesByAccount(ctx context.Context, accountID string, asOf time.Time) ([]*domain.PostedLine, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}
