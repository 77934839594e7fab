package statement

import (
	"testing"
)

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain text untouched", "振込 ヤマダタロウ", "振込 ヤマダタロウ"},
		{"empty untouched", "", ""},
		{"formula equals", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"formula plus", "+cmd|' /C calc'!A0", "'+cmd|' /C calc'!A0"},
		{"formula at", "@SUM(1,2)", "'@SUM(1,2)"},
		{"pipe", "|shell", "'|shell"},
		{"percent", "%TEMP%", "'%TEMP%"},
		{"leading spaces before formula", "  =1+1", "'  =1+1"},
		{"fullwidth space before formula", "　=1+1", "'　=1+1"},
		{"negative integer untouched", "-1234", "-1234"},
		{"negative with thousands separators", "-1,234,567.89", "-1,234,567.89"},
		{"negative decimal untouched", "-0.5", "-0.5"},
		{"minus followed by text escaped", "-1234abc", "'-1234abc"},
		{"bare minus escaped", "-", "'-"},
		{"number untouched", "1234", "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeCell(tt.input); got != tt.expect {
				t.Errorf("SanitizeCell(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestSanitizeCell_Idempotent(t *testing.T) {
	inputs := []string{"=SUM(A1)", "-1,234", "plain", "'=already"}
	for _, in := range inputs {
		once := SanitizeCell(in)
		twice := SanitizeCell(once)
		if once != twice {
			t.Errorf("SanitizeCell not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
