package usecase

import (
	"context"
	"time"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// RuleUseCase handles user-authored import rule management.
type RuleUseCase struct {
	ruleRepo RuleRepository
	idGen    IDGenerator
}

// NewRuleUseCase creates a new RuleUseCase.
func NewRuleUseCase(ruleRepo RuleRepository, idGen IDGenerator) *RuleUseCase {
	return &RuleUseCase{ruleRepo: ruleRepo, idGen: idGen}
}

// CreateRuleInput represents input for creating an import rule.
type CreateRuleInput struct {
	Pattern         string
	DebitAccountID  string
	CreditAccountID string
	Confidence      float64
	Priority        int
}

// CreateRule validates the pattern and persists a new active rule.
func (uc *RuleUseCase) CreateRule(ctx context.Context, input CreateRuleInput) (*domain.ImportRule, error) {
	now := time.Now().UTC()
	rule := &domain.ImportRule{
		ID:              uc.idGen.Generate(),
		Pattern:         input.Pattern,
		DebitAccountID:  input.DebitAccountID,
		CreditAccountID: input.CreditAccountID,
		Confidence:      input.Confidence,
		Priority:        input.Priority,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := rule.Compile(); err != nil {
		return nil, err
	}
	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// ListRules lists rules with pagination.
func (uc *RuleUseCase) ListRules(ctx context.Context, limit, offset int) ([]*domain.ImportRule, error) {
	return uc.ruleRepo.List(ctx, clampLimit(limit), offset)
}

// DeleteRule removes a rule.
func (uc *RuleUseCase) DeleteRule(ctx context.Context, id string) error {
	return uc.ruleRepo.Delete(ctx, id)
}
