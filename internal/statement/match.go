package statement

import (
	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
)

// HeaderCandidate is a header row as decoded under one candidate
// encoding. Uploads that do not declare an encoding reliably are decoded
// under both UTF-8 and Shift_JIS and the matcher decides.
type HeaderCandidate struct {
	Encoding Encoding
	Header   []string
}

// MatchResult records which template matched, under which encoding, and
// whether the candidate encodings disagreed. Ambiguity is surfaced
// rather than silently resolved so the caller can show it to the user.
type MatchResult struct {
	Template  *domain.Template
	Encoding  Encoding
	Ambiguous bool
}

// MatchTemplate returns the first template whose required columns are
// all present in one of the candidate header sets, or nil when none
// match. Matching is binary: column presence is exact-string.
func MatchTemplate(candidates []HeaderCandidate, templates []*domain.Template) *MatchResult {
	ambiguous := headersDisagree(candidates)

	for _, tpl := range templates {
		for _, cand := range candidates {
			if tpl.MatchesHeader(cand.Header) {
				return &MatchResult{
					Template:  tpl,
					Encoding:  cand.Encoding,
					Ambiguous: ambiguous,
				}
			}
		}
	}
	return nil
}

// headersDisagree reports whether two candidate decodings of the same
// bytes produced different header rows.
func headersDisagree(candidates []HeaderCandidate) bool {
	if len(candidates) < 2 {
		return false
	}
	first := candidates[0].Header
	for _, cand := range candidates[1:] {
		if len(cand.Header) != len(first) {
			return true
		}
		for i := range first {
			if cand.Header[i] != first[i] {
				return true
			}
		}
	}
	return false
}
