package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

const chartCacheKey = "chart-of-accounts"

// AccountUseCase handles chart-of-accounts operations. The active chart
// is cached since every import run reads it and it changes rarely.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	cache       Cache // optional
	cacheTTL    time.Duration
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator, cache Cache, cacheTTL time.Duration) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Code string
	Name string
	Type string
}

// CreateAccount creates a new chart-of-accounts entry.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	accountType, err := domain.ParseAccountType(input.Type)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Code:      input.Code,
		Name:      input.Name,
		Type:      accountType,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, clampLimit(limit), offset)
}

// ActiveChart returns the active chart of accounts, from cache when
// possible. A cache failure falls back to the store.
func (uc *AccountUseCase) ActiveChart(ctx context.Context) ([]*domain.Account, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, chartCacheKey); err == nil && raw != "" {
			var accounts []*domain.Account
			if err := json.Unmarshal([]byte(raw), &accounts); err == nil {
				return accounts, nil
			}
		}
	}

	accounts, err := uc.accountRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(accounts); err == nil {
			_ = uc.cache.Set(ctx, chartCacheKey, string(raw), uc.cacheTTL)
		}
	}
	return accounts, nil
}

func (uc *AccountUseCase) invalidate(ctx context.Context) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, chartCacheKey)
	}
}
