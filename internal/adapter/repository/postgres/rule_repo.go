package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// RuleRepository implements usecase.RuleRepository.
type RuleRepository struct {
	pool *pgxpool.Pool
}

// NewRuleRepository creates a new RuleRepository.
func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

// Create inserts a new import rule.
func (r *RuleRepository) Create(ctx context.Context, rule *domain.ImportRule) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO import_rules
			(id, pattern, debit_account_id, credit_account_id, confidence, priority, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rule.ID, rule.Pattern, rule.DebitAccountID, rule.CreditAccountID,
		rule.Confidence, rule.Priority, rule.IsActive, rule.CreatedAt, rule.UpdatedAt,
	)
	return err
}

// ListActive returns active rules ordered by priority.
func (r *RuleRepository) ListActive(ctx context.Context) ([]*domain.ImportRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, pattern, debit_account_id, credit_account_id, confidence, priority, is_active, created_at, updated_at
		FROM import_rules WHERE is_active ORDER BY priority, created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRules(rows)
}

// List returns rules with pagination, ordered by priority.
func (r *RuleRepository) List(ctx context.Context, limit, offset int) ([]*domain.ImportRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, pattern, debit_account_id, credit_account_id, confidence, priority, is_active, created_at, updated_at
		FROM import_rules ORDER BY priority, created_at LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRules(rows)
}

// Delete removes a rule by ID.
func (r *RuleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM import_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

func scanRules(rows pgx.Rows) ([]*domain.ImportRule, error) {
	rules := []*domain.ImportRule{}
	for rows.Next() {
		var rule domain.ImportRule
		err := rows.Scan(&rule.ID, &rule.Pattern, &rule.DebitAccountID, &rule.CreditAccountID,
			&rule.Confidence, &rule.Priority, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
		if err != nil {
			return nil, err
		}
		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rules, nil
		}
		return nil, err
	}
	return rules, nil
}
