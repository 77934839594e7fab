package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding identifies a supported statement character encoding.
type Encoding string

const (
	EncodingUTF8     Encoding = "utf-8"
	EncodingShiftJIS Encoding = "shift_jis"
	EncodingEUCJP    Encoding = "euc-jp"
)

// ParseEncoding normalizes a user-supplied encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "utf_8", "utf8", "":
		return EncodingUTF8, nil
	case "shift_jis", "sjis", "cp932", "windows_31j":
		return EncodingShiftJIS, nil
	case "euc_jp", "eucjp":
		return EncodingEUCJP, nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", s)
	}
}

// DecodeOptions configures one decode pass over an uploaded buffer.
type DecodeOptions struct {
	Encoding  Encoding
	Delimiter rune // 0 means comma
	HasHeader bool
	SkipRows  int // leading rows dropped before the header
	MaxRows   int // cap on data rows; 0 means unlimited
}

// Decoded is the result of a successful decode: a header row (empty when
// HasHeader was false) and sanitized data rows in input order.
type Decoded struct {
	Encoding  Encoding
	Header    []string
	Rows      [][]string
	Truncated bool // MaxRows cut the input short
}

// DecodeError reports an unrecoverable decode failure. Decoding never
// partially succeeds; the whole buffer is rejected.
type DecodeError struct {
	Encoding Encoding
	Row      int // 1-based, 0 when unknown
	Column   int // 1-based, 0 when unknown
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("decode %s: row %d column %d: %v", e.Encoding, e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var errInvalidBytes = errors.New("byte sequence is not valid for the declared encoding")

// Decode turns a raw byte buffer into sanitized text rows. Every cell
// passes through SanitizeCell before it is returned.
func Decode(buf []byte, opts DecodeOptions) (*Decoded, error) {
	text, err := decodeBytes(buf, opts.Encoding)
	if err != nil {
		return nil, err
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	out := &Decoded{Encoding: opts.Encoding}
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &DecodeError{Encoding: opts.Encoding, Row: parseErr.Line, Column: parseErr.Column, Err: err}
			}
			return nil, &DecodeError{Encoding: opts.Encoding, Err: err}
		}
		rowNum++

		if rowNum <= opts.SkipRows {
			continue
		}
		if opts.HasHeader && out.Header == nil {
			out.Header = trimAll(record)
			continue
		}
		if opts.MaxRows > 0 && len(out.Rows) >= opts.MaxRows {
			out.Truncated = true
			break
		}
		for i, cell := range record {
			record[i] = SanitizeCell(cell)
		}
		out.Rows = append(out.Rows, record)
	}

	return out, nil
}

// decodeBytes converts the buffer to UTF-8 text, rejecting the whole
// buffer when any byte sequence is invalid for the declared encoding.
func decodeBytes(buf []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingUTF8, "":
		if !utf8.Valid(buf) {
			return "", locateInvalid(buf, EncodingUTF8)
		}
		// Strip a BOM if present.
		return string(bytes.TrimPrefix(buf, []byte{0xEF, 0xBB, 0xBF})), nil
	case EncodingShiftJIS:
		return transformBytes(buf, enc, japanese.ShiftJIS.NewDecoder())
	case EncodingEUCJP:
		return transformBytes(buf, enc, japanese.EUCJP.NewDecoder())
	default:
		return "", &DecodeError{Encoding: enc, Err: fmt.Errorf("unsupported encoding %q", enc)}
	}
}

func transformBytes(buf []byte, enc Encoding, t transform.Transformer) (string, error) {
	decoded, _, err := transform.Bytes(t, buf)
	if err != nil {
		return "", &DecodeError{Encoding: enc, Err: err}
	}
	// The japanese decoders substitute U+FFFD for undecodable bytes
	// instead of failing; treat any substitution as a hard failure.
	if strings.ContainsRune(string(decoded), utf8.RuneError) {
		return "", locateInvalid(decoded, enc)
	}
	return string(decoded), nil
}

// locateInvalid walks the (possibly partially decoded) buffer to report
// the row and column of the first invalid sequence.
func locateInvalid(buf []byte, enc Encoding) *DecodeError {
	row, col := 1, 1
	for i := 0; i < len(buf); {
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			return &DecodeError{Encoding: enc, Row: row, Column: col, Err: errInvalidBytes}
		}
		if r == utf8.RuneError {
			// Decoded substitution rune inserted by the charset decoder.
			return &DecodeError{Encoding: enc, Row: row, Column: col, Err: errInvalidBytes}
		}
		if r == '\n' {
			row++
			col = 1
		} else {
			col++
		}
		i += size
	}
	return &DecodeError{Encoding: enc, Err: errInvalidBytes}
}

func trimAll(record []string) []string {
	out := make([]string, len(record))
	for i, cell := range record {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}
