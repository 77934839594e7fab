package statement

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain integer", "1234", "1234"},
		{"thousands separators", "1,234,567", "1234567"},
		{"yen sign", "¥1,234", "1234"},
		{"fullwidth yen sign", "￥5,000", "5000"},
		{"yen suffix", "1234円", "1234"},
		{"fullwidth digits", "１２３４", "1234"},
		{"fullwidth comma", "１，２３４", "1234"},
		{"negative", "-500", "-500"},
		{"parenthesized negative", "(500)", "-500"},
		{"fullwidth parens negative", "（５００）", "-500"},
		{"decimal point", "1234.56", "1234.56"},
		{"fullwidth decimal point", "１２３４．５６", "1234.56"},
		{"empty is zero", "", "0"},
		{"bare minus is zero", "-", "0"},
		{"whitespace only is zero", "  　", "0"},
		{"unparseable is zero", "不明", "0"},
		{"sanitizer prefix stripped", "'-1,234", "-1234"},
		{"internal spaces", "1 234 567", "1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.expect)
			if err != nil {
				t.Fatalf("bad expectation %q: %v", tt.expect, err)
			}
			got := ParseAmount(tt.input)
			if !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}
