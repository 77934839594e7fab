package classify

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

func postedEntry(date time.Time, amount int64) *domain.JournalEntry {
	return &domain.JournalEntry{
		Date:   date,
		Status: domain.StatusApproved,
		Lines: []domain.JournalLine{
			{AccountID: "a1", Debit: decimal.NewFromInt(amount), LineNumber: 1},
			{AccountID: "a2", Credit: decimal.NewFromInt(amount), LineNumber: 2},
		},
	}
}

func candidate(date time.Time, amount int64) *domain.NormalizedTransaction {
	return &domain.NormalizedTransaction{Date: date, Amount: decimal.NewFromInt(amount)}
}

func TestDuplicateDetector_FindDuplicates(t *testing.T) {
	apr10 := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	apr11 := time.Date(2024, 4, 11, 0, 0, 0, 0, time.UTC)

	posted := []*domain.JournalEntry{
		postedEntry(apr10, 5000),
		postedEntry(apr11, 12000),
	}

	d := &DuplicateDetector{}
	flags := d.FindDuplicates([]*domain.NormalizedTransaction{
		candidate(apr10, 5000),  // same date, same amount
		candidate(apr11, 5000),  // amount exists but on another date
		candidate(apr10, 5001),  // same date, amount off by one
		candidate(apr11, 12000), // second posted entry
	}, posted)

	expect := []bool{true, false, false, true}
	for i, want := range expect {
		if flags[i] != want {
			t.Errorf("candidate %d: expected %v, got %v", i, want, flags[i])
		}
	}
}

func TestDuplicateDetector_Tolerance(t *testing.T) {
	apr10 := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	posted := []*domain.JournalEntry{postedEntry(apr10, 5000)}

	d := &DuplicateDetector{Tolerance: decimal.NewFromInt(10)}
	flags := d.FindDuplicates([]*domain.NormalizedTransaction{
		candidate(apr10, 5010), // within tolerance
		candidate(apr10, 5011), // outside
	}, posted)

	if !flags[0] || flags[1] {
		t.Errorf("expected [true false], got %v", flags)
	}
}

func TestDuplicateDetector_EmptyInputs(t *testing.T) {
	d := &DuplicateDetector{}

	if flags := d.FindDuplicates(nil, nil); len(flags) != 0 {
		t.Errorf("expected empty flags, got %v", flags)
	}

	apr10 := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	flags := d.FindDuplicates([]*domain.NormalizedTransaction{candidate(apr10, 100)}, nil)
	if len(flags) != 1 || flags[0] {
		t.Errorf("candidate with no posted entries cannot be a duplicate: %v", flags)
	}
}
