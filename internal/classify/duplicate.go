package classify

import (
	"github.com/shopspring/decimal"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// DuplicateDetector flags candidate transactions that likely duplicate
// an already-posted journal entry. A candidate is a duplicate when a
// posted entry shares its date and its amount within Tolerance.
// Descriptions are not compared; a flagged row goes to a human anyway.
type DuplicateDetector struct {
	Tolerance decimal.Decimal // zero means exact amount match
}

// postedKey indexes committed entries by calendar date.
type postedKey struct {
	year  int
	month int
	day   int
}

// FindDuplicates returns one flag per candidate, in candidate order.
func (d *DuplicateDetector) FindDuplicates(candidates []*domain.NormalizedTransaction, posted []*domain.JournalEntry) []bool {
	byDate := make(map[postedKey][]decimal.Decimal, len(posted))
	for _, entry := range posted {
		k := postedKey{entry.Date.Year(), int(entry.Date.Month()), entry.Date.Day()}
		byDate[k] = append(byDate[k], entry.TotalDebit())
	}

	flags := make([]bool, len(candidates))
	for i, tx := range candidates {
		k := postedKey{tx.Date.Year(), int(tx.Date.Month()), tx.Date.Day()}
		for _, amount := range byDate[k] {
			if amount.Sub(tx.Amount).Abs().LessThanOrEqual(d.Tolerance) {
				flags[i] = true
				break
			}
		}
	}
	return flags
}
