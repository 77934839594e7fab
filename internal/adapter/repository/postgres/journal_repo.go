package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository. An entry and
// its lines are always written inside the caller's transaction, so a
// rejected entry never leaves a partial line set behind.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

// Create inserts the entry and all its lines atomically.
func (r *JournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	err := pgxTx.QueryRow(ctx, `
		INSERT INTO journal_entries (id, entry_date, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING entry_number`,
		entry.ID, entry.Date, entry.Description, string(entry.Status),
		entry.CreatedAt, entry.UpdatedAt,
	).Scan(&entry.EntryNumber)
	if err != nil {
		return err
	}

	return r.insertLines(ctx, pgxTx, entry)
}

// Update rewrites the entry header and replaces its full line set.
func (r *JournalRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, status = $4, updated_at = $5
		WHERE id = $1`,
		entry.ID, entry.Date, entry.Description, string(entry.Status), entry.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	if _, err := pgxTx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1`, entry.ID); err != nil {
		return err
	}
	return r.insertLines(ctx, pgxTx, entry)
}

func (r *JournalRepository) insertLines(ctx context.Context, pgxTx pgx.Tx, entry *domain.JournalEntry) error {
	for _, line := range entry.Lines {
		_, err := pgxTx.Exec(ctx, `
			INSERT INTO journal_lines (entry_id, line_number, account_id, debit, credit, description)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			entry.ID, line.LineNumber, line.AccountID, line.Debit, line.Credit, line.Description,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves an entry with its lines, ordered by line number.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, entry_number, entry_date, description, status, created_at, updated_at
		FROM journal_entries WHERE id = $1`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT line_number, account_id, debit, credit, description
		FROM journal_lines WHERE entry_id = $1 ORDER BY line_number`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.JournalLine
		if err := rows.Scan(&line.LineNumber, &line.AccountID, &line.Debit, &line.Credit, &line.Description); err != nil {
			return nil, err
		}
		entry.Lines = append(entry.Lines, line)
	}
	return entry, rows.Err()
}

// List returns entries matching the filter, newest first. Lines are not
// loaded; listings only need the header.
func (r *JournalRepository) List(ctx context.Context, filter usecase.JournalFilter) ([]*domain.JournalEntry, error) {
	query := `
		SELECT id, entry_number, entry_date, description, status, created_at, updated_at
		FROM journal_entries WHERE 1=1`
	args := []any{}

	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += ` AND entry_date >= $` + itoa(len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += ` AND entry_date <= $` + itoa(len(args))
	}
	if len(filter.Statuses) > 0 {
		args = append(args, statusStrings(filter.Statuses))
		query += ` AND status = ANY($` + itoa(len(args)) + `)`
	}
	args = append(args, filter.Limit)
	query += ` ORDER BY entry_date DESC, entry_number DESC LIMIT $` + itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + itoa(len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListByDateRange returns entries with their lines for the inclusive
// date range, used by duplicate detection.
func (r *JournalRepository) ListByDateRange(ctx context.Context, from, to time.Time, statuses []domain.EntryStatus) ([]*domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, entry_number, entry_date, description, status, created_at, updated_at
		FROM journal_entries
		WHERE entry_date >= $1 AND entry_date <= $2 AND status = ANY($3)
		ORDER BY entry_date, entry_number`,
		from, to, statusStrings(statuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := r.loadLines(ctx, entry); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (r *JournalRepository) loadLines(ctx context.Context, entry *domain.JournalEntry) error {
	rows, err := r.pool.Query(ctx, `
		SELECT line_number, account_id, debit, credit, description
		FROM journal_lines WHERE entry_id = $1 ORDER BY line_number`, entry.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.JournalLine
		if err := rows.Scan(&line.LineNumber, &line.AccountID, &line.Debit, &line.Credit, &line.Description); err != nil {
			return err
		}
		entry.Lines = append(entry.Lines, line)
	}
	return rows.Err()
}

func scanEntries(rows pgx.Rows) ([]*domain.JournalEntry, error) {
	entries := []*domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	var status string
	err := row.Scan(&entry.ID, &entry.EntryNumber, &entry.Date, &entry.Description,
		&status, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	entry.Status = domain.EntryStatus(status)
	return &entry, nil
}

func statusStrings(statuses []domain.EntryStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
