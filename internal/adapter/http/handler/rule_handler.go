package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/dto"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

// RuleHandler handles import rule HTTP requests.
type RuleHandler struct {
	ruleUC *usecase.RuleUseCase
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleUC *usecase.RuleUseCase) *RuleHandler {
	return &RuleHandler{ruleUC: ruleUC}
}

// Create creates a new import rule.
func (h *RuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rule, err := h.ruleUC.CreateRule(r.Context(), usecase.CreateRuleInput{
		Pattern:         req.Pattern,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		Confidence:      req.Confidence,
		Priority:        req.Priority,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create rule", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RuleFromDomain(rule))
}

// List lists rules with pagination.
func (h *RuleHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	rules, err := h.ruleUC.ListRules(r.Context(), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list rules", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RulesFromDomain(rules))
}

// Delete removes a rule.
func (h *RuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing rule ID", "")
		return
	}

	if err := h.ruleUC.DeleteRule(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete rule", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
