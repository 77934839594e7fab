package statement

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

func TestNormalizer_NormalizeRow_SignedAmount(t *testing.T) {
	n := &Normalizer{Template: &domain.Template{
		DateColumn: "日付", DescriptionColumn: "摘要", AmountColumn: "金額", TypeColumn: "区分",
	}}

	tests := []struct {
		name            string
		row             domain.RawRow
		expectAmount    int64
		expectDirection domain.Direction
	}{
		{
			name:            "positive is income",
			row:             domain.RawRow{"日付": "2024/01/05", "摘要": "給与振込", "金額": "200,000"},
			expectAmount:    200000,
			expectDirection: domain.DirectionIncome,
		},
		{
			name:            "negative is expense, amount absolute",
			row:             domain.RawRow{"日付": "2024/01/05", "摘要": "コンビニ", "金額": "-1,280"},
			expectAmount:    1280,
			expectDirection: domain.DirectionExpense,
		},
		{
			name:            "type column overrides sign",
			row:             domain.RawRow{"日付": "2024/01/05", "摘要": "引落", "金額": "3,000", "区分": "出金"},
			expectAmount:    3000,
			expectDirection: domain.DirectionExpense,
		},
		{
			name:            "zero amount with unknown direction",
			row:             domain.RawRow{"日付": "2024/01/05", "摘要": "メモ", "金額": ""},
			expectAmount:    0,
			expectDirection: domain.DirectionUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, rowErr := n.NormalizeRow(tt.row, 0)
			if rowErr != nil {
				t.Fatalf("unexpected row error: %v", rowErr)
			}
			if !tx.Amount.Equal(decimal.NewFromInt(tt.expectAmount)) {
				t.Errorf("expected amount %d, got %s", tt.expectAmount, tx.Amount)
			}
			if tx.Direction != tt.expectDirection {
				t.Errorf("expected direction %s, got %s", tt.expectDirection, tx.Direction)
			}
		})
	}
}

func TestDirectionFromType(t *testing.T) {
	tests := []struct {
		cell string
		want domain.Direction
	}{
		{"入金", domain.DirectionIncome},
		{"振込入金", domain.DirectionIncome},
		{"deposit", domain.DirectionIncome},
		{"incoming", domain.DirectionIncome},
		{"IN", domain.DirectionIncome},
		{"出金", domain.DirectionExpense},
		{"引落", domain.DirectionExpense},
		{"withdrawal", domain.DirectionExpense},
		{"debit", domain.DirectionExpense},
		{"outgoing", domain.DirectionExpense},
		{"OUT", domain.DirectionExpense},
		{"", domain.DirectionUnknown},
		{"その他", domain.DirectionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			if got := directionFromType(tt.cell); got != tt.want {
				t.Errorf("directionFromType(%q) = %s, want %s", tt.cell, got, tt.want)
			}
		})
	}
}

func TestNormalizer_NormalizeRow_TypeColumnVocabulary(t *testing.T) {
	n := &Normalizer{Template: &domain.Template{
		DateColumn: "日付", DescriptionColumn: "摘要", AmountColumn: "金額", TypeColumn: "区分",
	}}

	tx, rowErr := n.NormalizeRow(domain.RawRow{
		"日付": "2024/01/05", "摘要": "振込手数料", "金額": "440", "区分": "outgoing",
	}, 0)
	if rowErr != nil {
		t.Fatalf("unexpected row error: %v", rowErr)
	}
	if tx.Direction != domain.DirectionExpense {
		t.Errorf("expected outgoing type to mean expense, got %s", tx.Direction)
	}
}

func TestNormalizer_NormalizeRow_DepositWithdrawalPair(t *testing.T) {
	n := &Normalizer{Template: &domain.Template{
		DateColumn: "日付", DescriptionColumn: "摘要",
		DepositColumn: "お預入れ", WithdrawalColumn: "お引出し", BalanceColumn: "残高",
	}}

	t.Run("deposit row", func(t *testing.T) {
		tx, rowErr := n.NormalizeRow(domain.RawRow{
			"日付": "2024/04/01", "摘要": "ATM入金", "お預入れ": "200,000", "お引出し": "", "残高": "350,000",
		}, 0)
		if rowErr != nil {
			t.Fatalf("unexpected row error: %v", rowErr)
		}
		if !tx.Amount.Equal(decimal.NewFromInt(200000)) || tx.Direction != domain.DirectionIncome {
			t.Errorf("expected 200000 income, got %s %s", tx.Amount, tx.Direction)
		}
		if tx.Balance == nil || !tx.Balance.Equal(decimal.NewFromInt(350000)) {
			t.Errorf("expected balance 350000, got %v", tx.Balance)
		}
	})

	t.Run("withdrawal row", func(t *testing.T) {
		tx, rowErr := n.NormalizeRow(domain.RawRow{
			"日付": "2024/04/02", "摘要": "電気料金", "お預入れ": "", "お引出し": "8,500", "残高": "341,500",
		}, 1)
		if rowErr != nil {
			t.Fatalf("unexpected row error: %v", rowErr)
		}
		if !tx.Amount.Equal(decimal.NewFromInt(8500)) || tx.Direction != domain.DirectionExpense {
			t.Errorf("expected 8500 expense, got %s %s", tx.Amount, tx.Direction)
		}
	})
}

func TestNormalizer_NormalizeRow_Failures(t *testing.T) {
	n := &Normalizer{}

	tests := []struct {
		name        string
		row         domain.RawRow
		expectField string
	}{
		{"missing date", domain.RawRow{"摘要": "x", "金額": "100"}, "date"},
		{"empty date", domain.RawRow{"日付": "  ", "摘要": "x", "金額": "100"}, "date"},
		{"unparseable date", domain.RawRow{"日付": "2024/02/30", "摘要": "x", "金額": "100"}, "date"},
		{"missing description", domain.RawRow{"日付": "2024/01/05", "金額": "100"}, "description"},
		{"empty description", domain.RawRow{"日付": "2024/01/05", "摘要": "", "金額": "100"}, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, rowErr := n.NormalizeRow(tt.row, 3)
			if tx != nil || rowErr == nil {
				t.Fatal("expected row error")
			}
			if rowErr.Field != tt.expectField {
				t.Errorf("expected field %q, got %q", tt.expectField, rowErr.Field)
			}
			if rowErr.RowIndex != 3 {
				t.Errorf("expected row index 3, got %d", rowErr.RowIndex)
			}
		})
	}
}

func TestNormalizer_FallbackHeaders(t *testing.T) {
	// No template: well-known header names are tried instead.
	n := &Normalizer{}

	tx, rowErr := n.NormalizeRow(domain.RawRow{
		"取引日": "2024/01/05", "内容": "振込 ヤマダ", "利用金額": "4,200",
	}, 0)
	if rowErr != nil {
		t.Fatalf("unexpected row error: %v", rowErr)
	}
	if tx.Description != "振込 ヤマダ" {
		t.Errorf("unexpected description %q", tx.Description)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(4200)) {
		t.Errorf("expected 4200, got %s", tx.Amount)
	}
}

func TestNormalizer_NormalizeAll(t *testing.T) {
	n := &Normalizer{Concurrency: 4}

	rows := []domain.RawRow{
		{"日付": "2024/01/01", "摘要": "a", "金額": "100"},
		{"日付": "bad-date", "摘要": "b", "金額": "200"},
		{"日付": "2024/01/03", "摘要": "c", "金額": "300"},
		{"日付": "2024/01/04", "摘要": "", "金額": "400"},
		{"日付": "2024/01/05", "摘要": "e", "金額": "500"},
	}

	txs, failures := n.NormalizeAll(context.Background(), rows)

	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	// Input order must be preserved despite parallel workers.
	for i, desc := range []string{"a", "c", "e"} {
		if txs[i].Description != desc {
			t.Errorf("position %d: expected %q, got %q", i, desc, txs[i].Description)
		}
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}
	if failures[0].RowIndex != 1 || failures[1].RowIndex != 3 {
		t.Errorf("failures not sorted by row index: %+v", failures)
	}
}

func TestRowsFromDecoded(t *testing.T) {
	d := &Decoded{
		Header: []string{"日付", "摘要"},
		Rows: [][]string{
			{"2024/01/01", "a", "extra"},
			{"2024/01/02", "b"},
		},
	}

	rows := RowsFromDecoded(d)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["日付"] != "2024/01/01" || rows[0]["摘要"] != "a" {
		t.Errorf("unexpected row: %v", rows[0])
	}
	// Cells beyond the header get positional names.
	if rows[0]["col2"] != "extra" {
		t.Errorf("expected positional key for extra cell, got %v", rows[0])
	}
}
