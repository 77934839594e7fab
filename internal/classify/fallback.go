package classify

import (
	"context"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// DefaultConfidence marks a suggestion that needs human review.
const DefaultConfidence = 0.3

// DefaultStrategy is the last layer: a direction-only mapping of the
// transaction against the default cash/bank account and a generic
// revenue or expense account. Declines when no cash account can be
// located, leaving the row unmapped.
func DefaultStrategy(_ context.Context, tx *domain.NormalizedTransaction, env *Env) *domain.AccountSuggestion {
	if env.Cash == nil {
		return nil
	}

	if tx.Direction == domain.DirectionIncome {
		revenue := domain.FindByType(env.Accounts, domain.AccountTypeRevenue)
		if revenue == nil {
			return nil
		}
		return &domain.AccountSuggestion{
			DebitAccountID:  env.Cash.ID,
			CreditAccountID: revenue.ID,
			Confidence:      DefaultConfidence,
			Origin:          "default",
		}
	}

	// Expense and unknown directions both post as expense; either way
	// the 0.3 confidence flags the row for review.
	expense := domain.FindByType(env.Accounts, domain.AccountTypeExpense)
	if expense == nil {
		return nil
	}
	return &domain.AccountSuggestion{
		DebitAccountID:  expense.ID,
		CreditAccountID: env.Cash.ID,
		Confidence:      DefaultConfidence,
		Origin:          "default",
	}
}
