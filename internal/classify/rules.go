package classify

import (
	"context"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// RuleStrategy evaluates the user's active rules in priority order.
// First match wins.
func RuleStrategy(_ context.Context, tx *domain.NormalizedTransaction, env *Env) *domain.AccountSuggestion {
	for _, rule := range env.Rules {
		if !rule.Matches(tx.Description) {
			continue
		}
		return &domain.AccountSuggestion{
			DebitAccountID:  rule.DebitAccountID,
			CreditAccountID: rule.CreditAccountID,
			Confidence:      rule.EffectiveConfidence(),
			Origin:          "rule:" + rule.ID,
		}
	}
	return nil
}
