package domain

import (
	"strings"
	"time"
)

// AccountType classifies an account in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(strings.ToLower(strings.TrimSpace(s))) {
	case AccountTypeAsset:
		return AccountTypeAsset, nil
	case AccountTypeLiability:
		return AccountTypeLiability, nil
	case AccountTypeEquity:
		return AccountTypeEquity, nil
	case AccountTypeRevenue:
		return AccountTypeRevenue, nil
	case AccountTypeExpense:
		return AccountTypeExpense, nil
	default:
		return "", ErrUnknownAccountType
	}
}

// DebitNormal reports whether balances of this type grow on the debit side.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account is one entry in the chart of accounts.
type Account struct {
	ID        string
	Code      string
	Name      string
	Type      AccountType
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// cash/bank account codes conventional in Japanese charts of accounts.
var cashAccountNames = []string{"現金", "普通預金", "当座預金", "小口現金", "cash", "bank"}

// IsCashLike reports whether the account can serve as the default
// cash/bank side of an imported posting.
func (a *Account) IsCashLike() bool {
	if a.Type != AccountTypeAsset {
		return false
	}
	name := strings.ToLower(a.Name)
	for _, n := range cashAccountNames {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}

// FindCashAccount returns the first active cash/bank account, or nil.
func FindCashAccount(accounts []*Account) *Account {
	for _, a := range accounts {
		if a.IsActive && a.IsCashLike() {
			return a
		}
	}
	return nil
}

// FindByCode resolves an account code against the chart, or nil.
func FindByCode(accounts []*Account, code string) *Account {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	for _, a := range accounts {
		if a.Code == code {
			return a
		}
	}
	return nil
}

// FindByType returns the first active account of the given type, or nil.
func FindByType(accounts []*Account, t AccountType) *Account {
	for _, a := range accounts {
		if a.IsActive && a.Type == t {
			return a
		}
	}
	return nil
}
