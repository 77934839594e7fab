package classify

import (
	"context"
	"strings"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// Confidence levels for keyword matches; specific merchant-style
// keywords score slightly above generic category words.
const (
	keywordConfidenceSpecific = 0.7
	keywordConfidenceGeneric  = 0.6
)

// keywordCategory ties a bilingual keyword set to the account name the
// category posts against.
type keywordCategory struct {
	accountNames []string // candidate account names in the chart
	keywords     []string
	confidence   float64
}

// Fixed bilingual keyword table for common expense categories. The
// account is located by name in the chart at classification time.
var keywordCategories = []keywordCategory{
	{
		accountNames: []string{"水道光熱費"},
		keywords:     []string{"電気", "ガス", "水道", "電力", "electric", "gas", "water"},
		confidence:   keywordConfidenceSpecific,
	},
	{
		accountNames: []string{"通信費"},
		keywords:     []string{"携帯", "電話", "インターネット", "ドコモ", "ソフトバンク", "phone", "mobile", "internet"},
		confidence:   keywordConfidenceSpecific,
	},
	{
		accountNames: []string{"旅費交通費"},
		keywords:     []string{"タクシー", "電車", "新幹線", "航空", "jr", "taxi", "train", "airline"},
		confidence:   keywordConfidenceSpecific,
	},
	{
		accountNames: []string{"支払手数料"},
		keywords:     []string{"手数料", "fee", "charge"},
		confidence:   keywordConfidenceGeneric,
	},
	{
		accountNames: []string{"地代家賃"},
		keywords:     []string{"家賃", "賃料", "rent"},
		confidence:   keywordConfidenceGeneric,
	},
	{
		accountNames: []string{"消耗品費"},
		keywords:     []string{"文具", "事務用品", "アマゾン", "amazon", "supplies"},
		confidence:   keywordConfidenceGeneric,
	},
}

// KeywordStrategy matches the description against the fixed bilingual
// keyword table, combined with the transaction direction, posting
// against the default cash/bank account. Declines when no cash account
// or no matching category account exists in the chart.
func KeywordStrategy(_ context.Context, tx *domain.NormalizedTransaction, env *Env) *domain.AccountSuggestion {
	if env.Cash == nil {
		return nil
	}

	desc := strings.ToLower(tx.Description)
	for _, cat := range keywordCategories {
		keyword := matchKeyword(desc, cat.keywords)
		if keyword == "" {
			continue
		}
		account := findByNames(env.Accounts, cat.accountNames)
		if account == nil {
			continue
		}

		suggestion := &domain.AccountSuggestion{
			Confidence: cat.confidence,
			Origin:     "keyword:" + keyword,
		}
		// Keyword categories are expense accounts; an income-direction
		// match is a refund/reversal and flips the sides.
		if tx.Direction == domain.DirectionIncome {
			suggestion.DebitAccountID = env.Cash.ID
			suggestion.CreditAccountID = account.ID
		} else {
			suggestion.DebitAccountID = account.ID
			suggestion.CreditAccountID = env.Cash.ID
		}
		return suggestion
	}
	return nil
}

func matchKeyword(desc string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(desc, kw) {
			return kw
		}
	}
	return ""
}

func findByNames(accounts []*domain.Account, names []string) *domain.Account {
	for _, name := range names {
		for _, a := range accounts {
			if a.IsActive && strings.Contains(a.Name, name) {
				return a
			}
		}
	}
	return nil
}
