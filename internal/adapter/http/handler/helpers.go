package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/dto"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/statement"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var decodeErr *statement.DecodeError
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrRuleNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnbalancedEntry),
		errors.Is(err, domain.ErrEmptyEntry),
		errors.Is(err, domain.ErrInvalidLine),
		errors.Is(err, domain.ErrNegativeLineAmount),
		errors.Is(err, domain.ErrLineNumberGap),
		errors.Is(err, domain.ErrInvalidRulePattern),
		errors.Is(err, domain.ErrUnknownAccountType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEntryNotDraft),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrDuplicateCode):
		return http.StatusConflict
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
