package statement

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultDateFormat is used when an import does not supply a hint.
const DefaultDateFormat = "YYYY/MM/DD"

// dateSeparatorNormalizer collapses the separators seen in Japanese
// statement exports (full-width slashes, kanji era-free dates like
// 2024年1月5日) onto a single ASCII slash.
var dateSeparatorNormalizer = strings.NewReplacer(
	"／", "/", "－", "/", "−", "/", "-", "/", ".", "/", "．", "/",
	"年", "/", "月", "/", "日", "",
	" ", "", "　", "",
	"０", "0", "１", "1", "２", "2", "３", "3", "４", "4",
	"５", "5", "６", "6", "７", "7", "８", "8", "９", "9",
)

// ParseDate parses a statement date cell using a format hint such as
// "YYYY/MM/DD" or "DD-MM-YYYY". The hint only determines component
// order; any common separator is accepted. Two-digit years are windowed:
// below 50 into the 2000s, otherwise the 1900s. The reconstructed date
// must round-trip exactly, which rejects overflows like 2024/02/30.
func ParseDate(s, format string) (time.Time, error) {
	if format == "" {
		format = DefaultDateFormat
	}

	normalized := dateSeparatorNormalizer.Replace(strings.TrimSpace(s))
	parts := strings.FieldsFunc(normalized, func(r rune) bool { return r == '/' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("date %q: expected 3 components, got %d", s, len(parts))
	}

	order := componentOrder(format)
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("date %q: non-numeric component %q", s, p)
		}
		nums[i] = n
	}

	year, month, day := nums[order[0]], nums[order[1]], nums[order[2]]
	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("date %q: not a valid calendar date", s)
	}
	return t, nil
}

// componentOrder returns the positions of year, month and day within the
// hint format. Malformed hints fall back to year-month-day.
func componentOrder(format string) [3]int {
	type pos struct {
		idx       int
		component byte
	}
	upper := strings.ToUpper(format)
	positions := []pos{}
	for _, c := range []byte{'Y', 'M', 'D'} {
		if i := strings.IndexByte(upper, c); i >= 0 {
			positions = append(positions, pos{idx: i, component: c})
		}
	}
	if len(positions) != 3 {
		return [3]int{0, 1, 2}
	}

	// Sort by appearance to find which field each component occupies.
	order := [3]int{}
	rank := 0
	for rank < 3 {
		best := -1
		for i, p := range positions {
			if p.idx < 0 {
				continue
			}
			if best == -1 || p.idx < positions[best].idx {
				best = i
			}
		}
		switch positions[best].component {
		case 'Y':
			order[0] = rank
		case 'M':
			order[1] = rank
		case 'D':
			order[2] = rank
		}
		positions[best].idx = -1
		rank++
	}
	return order
}
