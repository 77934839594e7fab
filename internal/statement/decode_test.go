package statement

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func sjisBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	if err != nil {
		t.Fatalf("shift_jis encode: %v", err)
	}
	return b
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		input  string
		expect Encoding
		ok     bool
	}{
		{"utf-8", EncodingUTF8, true},
		{"UTF8", EncodingUTF8, true},
		{"", EncodingUTF8, true},
		{"shift_jis", EncodingShiftJIS, true},
		{"Shift-JIS", EncodingShiftJIS, true},
		{"sjis", EncodingShiftJIS, true},
		{"cp932", EncodingShiftJIS, true},
		{"euc-jp", EncodingEUCJP, true},
		{"latin-1", "", false},
	}

	for _, tt := range tests {
		got, err := ParseEncoding(tt.input)
		if tt.ok && (err != nil || got != tt.expect) {
			t.Errorf("ParseEncoding(%q) = %v, %v; want %v", tt.input, got, err, tt.expect)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseEncoding(%q): expected error", tt.input)
		}
	}
}

func TestDecode_UTF8(t *testing.T) {
	buf := []byte("日付,摘要,金額\n2024/01/05,電気料金,1234\n2024/01/06,振込,5678\n")

	decoded, err := Decode(buf, DecodeOptions{Encoding: EncodingUTF8, HasHeader: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(decoded.Header) != 3 || decoded.Header[0] != "日付" {
		t.Errorf("unexpected header: %v", decoded.Header)
	}
	if len(decoded.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(decoded.Rows))
	}
	if decoded.Rows[0][1] != "電気料金" {
		t.Errorf("unexpected cell: %q", decoded.Rows[0][1])
	}
	if decoded.Truncated {
		t.Error("unexpected truncation")
	}
}

func TestDecode_ShiftJIS(t *testing.T) {
	buf := sjisBytes(t, "日付,摘要,金額\n2024/01/05,コンビニ,500\n")

	decoded, err := Decode(buf, DecodeOptions{Encoding: EncodingShiftJIS, HasHeader: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Rows[0][1] != "コンビニ" {
		t.Errorf("expected コンビニ, got %q", decoded.Rows[0][1])
	}
}

func TestDecode_InvalidBytes(t *testing.T) {
	// Shift_JIS bytes declared as UTF-8 must fail with a position.
	buf := sjisBytes(t, "日付,摘要\nあ,い\n")

	_, err := Decode(buf, DecodeOptions{Encoding: EncodingUTF8, HasHeader: true})
	if err == nil {
		t.Fatal("expected decode error")
	}
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	if decodeErr.Row < 1 {
		t.Errorf("expected positioned error, got row %d", decodeErr.Row)
	}
}

func TestDecode_UTF8BytesAsShiftJIS(t *testing.T) {
	// Multibyte UTF-8 text rarely survives a Shift_JIS decode intact;
	// undecodable sequences must reject the buffer.
	buf := []byte("日付,摘要\n2024/01/05,テスト\xe3\n")

	if _, err := Decode(buf, DecodeOptions{Encoding: EncodingShiftJIS, HasHeader: true}); err == nil {
		t.Error("expected decode error for invalid shift_jis input")
	}
}

func TestDecode_SkipRowsAndMaxRows(t *testing.T) {
	buf := []byte("銀行名,,\nダウンロード日: 2024/02/01,,\n日付,摘要,金額\n2024/01/01,a,1\n2024/01/02,b,2\n2024/01/03,c,3\n")

	decoded, err := Decode(buf, DecodeOptions{
		Encoding:  EncodingUTF8,
		HasHeader: true,
		SkipRows:  2,
		MaxRows:   2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Header[0] != "日付" {
		t.Errorf("expected header after skipped rows, got %v", decoded.Header)
	}
	if len(decoded.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(decoded.Rows))
	}
	if !decoded.Truncated {
		t.Error("expected truncation flag")
	}
}

func TestDecode_NoHeader(t *testing.T) {
	buf := []byte("2024/01/01,a,1\n2024/01/02,b,2\n")

	decoded, err := Decode(buf, DecodeOptions{Encoding: EncodingUTF8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Header != nil {
		t.Errorf("expected no header, got %v", decoded.Header)
	}
	if len(decoded.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(decoded.Rows))
	}
}

func TestDecode_TabDelimiter(t *testing.T) {
	buf := []byte("日付\t摘要\t金額\n2024/01/05\tメモ\t100\n")

	decoded, err := Decode(buf, DecodeOptions{Encoding: EncodingUTF8, Delimiter: '\t', HasHeader: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.Rows[0]) != 3 {
		t.Errorf("expected 3 cells, got %v", decoded.Rows[0])
	}
}

func TestDecode_SanitizesCells(t *testing.T) {
	buf := []byte("日付,摘要,金額\n2024/01/05,=cmd(),100\n")

	decoded, err := Decode(buf, DecodeOptions{Encoding: EncodingUTF8, HasHeader: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Rows[0][1] != "'=cmd()" {
		t.Errorf("expected sanitized cell, got %q", decoded.Rows[0][1])
	}
}

func TestDecode_BOM(t *testing.T) {
	buf := append([]byte{0xEF, 0xBB, 0xBF}, []byte("日付,摘要,金額\n2024/01/05,x,1\n")...)

	decoded, err := Decode(buf, DecodeOptions{Encoding: EncodingUTF8, HasHeader: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.Header[0] != "日付" {
		t.Errorf("BOM should be stripped, got header %q", decoded.Header[0])
	}
}
