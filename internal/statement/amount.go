package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// fullwidthNormalizer maps full-width digits and punctuation that show
// up in Japanese bank exports onto their ASCII forms, and strips
// currency symbols and thousands separators.
var fullwidthNormalizer = strings.NewReplacer(
	"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
	"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
	"．", ".", "－", "-", "（", "(", "）", ")",
	"¥", "", "￥", "", "円", "",
	",", "", "，", "",
	" ", "", "　", "",
)

// ParseAmount parses a statement amount cell into a signed decimal.
// Currency symbols, thousands separators and full-width characters are
// normalized first; a parenthesized value is negative. Unparseable cells
// normalize to zero rather than failing the row.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	// Drop the sanitizer's quote prefix if the cell went through it.
	s = strings.TrimPrefix(s, "'")
	s = fullwidthNormalizer.Replace(s)

	if s == "" || s == "-" {
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Neg()
	}
	return d
}
