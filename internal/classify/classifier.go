// Package classify assigns a debit/credit account pair and a confidence
// score to each normalized statement transaction.
//
// Classification is a layered strategy: an ordered list of pure
// functions tried in sequence, first non-nil suggestion wins. Each layer
// stays independently testable; there is no dispatch hierarchy.
package classify

import (
	"context"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// Env is the read-only context one classification pass runs against:
// the user's ordered rules, the chart of accounts, and the located
// default cash/bank account (nil when the chart has none).
type Env struct {
	Rules    []*domain.ImportRule
	Accounts []*domain.Account
	Cash     *domain.Account
}

// NewEnv builds an Env, locating the default cash/bank account.
func NewEnv(rules []*domain.ImportRule, accounts []*domain.Account) *Env {
	return &Env{
		Rules:    rules,
		Accounts: accounts,
		Cash:     domain.FindCashAccount(accounts),
	}
}

// Strategy is one classification layer. A nil result means "no opinion";
// the next layer is tried. Strategies must never return an error: a
// failing layer (e.g. the AI service) falls through silently.
type Strategy func(ctx context.Context, tx *domain.NormalizedTransaction, env *Env) *domain.AccountSuggestion

// Classifier runs strategies in priority order.
type Classifier struct {
	strategies []Strategy
}

// New builds the standard chain: user rules, then the optional AI
// suggester, then keyword heuristics, then the direction-only default.
func New(ai Suggester) *Classifier {
	strategies := []Strategy{RuleStrategy}
	if ai != nil {
		strategies = append(strategies, AIStrategy(ai))
	}
	strategies = append(strategies, KeywordStrategy, DefaultStrategy)
	return &Classifier{strategies: strategies}
}

// NewWithStrategies builds a classifier from an explicit chain.
func NewWithStrategies(strategies ...Strategy) *Classifier {
	return &Classifier{strategies: strategies}
}

// Classify returns the first suggestion produced by the chain, or nil
// when every layer declines (the row stays unmapped, not an error).
func (c *Classifier) Classify(ctx context.Context, tx *domain.NormalizedTransaction, env *Env) *domain.AccountSuggestion {
	for _, s := range c.strategies {
		if suggestion := s(ctx, tx, env); suggestion != nil {
			return suggestion
		}
	}
	return nil
}
