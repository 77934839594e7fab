package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/statement"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"rule not found", domain.ErrRuleNotFound, http.StatusNotFound},
		{"unbalanced", domain.ErrUnbalancedEntry, http.StatusBadRequest},
		{"invalid line", domain.ErrInvalidLine, http.StatusBadRequest},
		{"bad pattern", domain.ErrInvalidRulePattern, http.StatusBadRequest},
		{"not draft", domain.ErrEntryNotDraft, http.StatusConflict},
		{"bad transition", domain.ErrInvalidTransition, http.StatusConflict},
		{"duplicate code", domain.ErrDuplicateCode, http.StatusConflict},
		{"wrapped", fmt.Errorf("create: %w", domain.ErrUnbalancedEntry), http.StatusBadRequest},
		{"decode failure", &statement.DecodeError{Encoding: statement.EncodingUTF8, Row: 3, Err: errors.New("invalid byte")}, http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseIntQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=abc", nil)

	if got := parseIntQuery(r, "limit", 50); got != 25 {
		t.Errorf("limit: got %d", got)
	}
	if got := parseIntQuery(r, "missing", 50); got != 50 {
		t.Errorf("missing key must yield the default, got %d", got)
	}
	if got := parseIntQuery(r, "bad", 50); got != 50 {
		t.Errorf("unparseable value must yield the default, got %d", got)
	}
}
