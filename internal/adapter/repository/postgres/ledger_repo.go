package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository. It only reads
// committed entries; draft entries never reach a ledger view.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// LinesByAccount returns posted lines for the account in the inclusive
// range, ordered by (date, entry number, line number).
func (r *LedgerRepository) LinesByAccount(ctx context.Context, accountID string, from, to time.Time, statuses []domain.EntryStatus) ([]*domain.PostedLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.entry_number, e.entry_date, l.description, l.account_id,
		       l.debit, l.credit, l.settled_at IS NOT NULL
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE l.account_id = $1
		  AND e.entry_date >= $2 AND e.entry_date <= $3
		  AND e.status = ANY($4)
		ORDER BY e.entry_date, e.entry_number, l.line_number`,
		accountID, from, to, statusStrings(statuses))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostedLines(rows)
}

// OpenLinesByAccount returns unsettled approved lines dated on or
// before asOf, for aging and payment-schedule projection.
func (r *LedgerRepository) OpenLinesByAccount(ctx context.Context, accountID string, asOf time.Time) ([]*domain.PostedLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT e.id, e.entry_number, e.entry_date, l.description, l.account_id,
		       l.debit, l.credit, l.settled_at IS NOT NULL
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.entry_id
		WHERE l.account_id = $1
		  AND l.settled_at IS NULL
		  AND e.entry_date <= $2
		  AND e.status = $3
		ORDER BY e.entry_date, e.entry_number, l.line_number`,
		accountID, asOf, string(domain.StatusApproved))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPostedLines(rows)
}

func scanPostedLines(rows pgx.Rows) ([]*domain.PostedLine, error) {
	lines := []*domain.PostedLine{}
	for rows.Next() {
		var line domain.PostedLine
		err := rows.Scan(&line.EntryID, &line.EntryNumber, &line.Date, &line.Description,
			&line.AccountID, &line.Debit, &line.Credit, &line.Settled)
		if err != nil {
			return nil, err
		}
		lines = append(lines, &line)
	}
	return lines, rows.Err()
}
