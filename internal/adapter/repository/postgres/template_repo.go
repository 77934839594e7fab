package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// TemplateRepository implements usecase.TemplateRepository. Templates
// are configuration data: loaded once per import run, read-only after.
type TemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// List returns all templates in definition order.
func (r *TemplateRepository) List(ctx context.Context) ([]*domain.Template, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, date_column, description_column, amount_column,
		       deposit_column, withdrawal_column, type_column, balance_column
		FROM import_templates ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []*domain.Template{}
	for rows.Next() {
		var t domain.Template
		err := rows.Scan(&t.ID, &t.Name, &t.DateColumn, &t.DescriptionColumn, &t.AmountColumn,
			&t.DepositColumn, &t.WithdrawalColumn, &t.TypeColumn, &t.BalanceColumn)
		if err != nil {
			return nil, err
		}
		templates = append(templates, &t)
	}
	return templates, rows.Err()
}
