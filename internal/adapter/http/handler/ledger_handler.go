package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/dto"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

// LedgerHandler handles subsidiary ledger HTTP requests.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Get returns the account ledger with running balance for a date range.
// Query params: from, to (YYYY-MM-DD, required), opening_balance (optional).
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'from' date (use YYYY-MM-DD)", err.Error())
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'to' date (use YYYY-MM-DD)", err.Error())
		return
	}

	opening := decimal.Zero
	if s := r.URL.Query().Get("opening_balance"); s != "" {
		opening, err = decimal.NewFromString(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid opening_balance", err.Error())
			return
		}
	}

	view, err := h.ledgerUC.GetLedger(r.Context(), accountID, from, to, opening)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(view))
}

// Aging returns open balances bucketed by elapsed days.
func (h *LedgerHandler) Aging(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	report, err := h.ledgerUC.GetAging(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build aging report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AgingFromDomain(report))
}

// PaymentSchedule returns open balances projected onto expected due dates.
func (h *LedgerHandler) PaymentSchedule(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	schedule, err := h.ledgerUC.GetPaymentSchedule(r.Context(), accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build payment schedule", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromDomain(schedule))
}
