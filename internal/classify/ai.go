package classify

import (
	"context"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// MinAIConfidence is the floor below which an AI suggestion is ignored.
const MinAIConfidence = 0.7

// AISuggestion is the raw answer from the external classification
// service. It is untrusted: the account codes are re-resolved against
// the real chart of accounts and never used as IDs directly.
type AISuggestion struct {
	DebitAccountCode  string
	CreditAccountCode string
	Confidence        float64
	Reason            string
}

// Suggester is the external AI classification service boundary.
type Suggester interface {
	Suggest(ctx context.Context, description string, accounts []*domain.Account) (*AISuggestion, error)
}

// AIStrategy wraps the external service as one classification layer.
// Any transport or parse failure, a low-confidence answer, or account
// codes that do not resolve against the chart all fall through silently;
// this path must never block the pipeline.
func AIStrategy(svc Suggester) Strategy {
	return func(ctx context.Context, tx *domain.NormalizedTransaction, env *Env) *domain.AccountSuggestion {
		raw, err := svc.Suggest(ctx, tx.Description, env.Accounts)
		if err != nil || raw == nil {
			return nil
		}
		if raw.Confidence < MinAIConfidence {
			return nil
		}

		debit := domain.FindByCode(env.Accounts, raw.DebitAccountCode)
		credit := domain.FindByCode(env.Accounts, raw.CreditAccountCode)
		if debit == nil || credit == nil {
			return nil
		}

		return &domain.AccountSuggestion{
			DebitAccountID:  debit.ID,
			CreditAccountID: credit.ID,
			Confidence:      raw.Confidence,
			Origin:          "ai",
		}
	}
}
