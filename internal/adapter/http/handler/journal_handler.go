package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/dto"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

// JournalHandler handles journal entry HTTP requests.
type JournalHandler struct {
	journalUC *usecase.JournalUseCase
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalUC *usecase.JournalUseCase) *JournalHandler {
	return &JournalHandler{journalUC: journalUC}
}

// Create creates a draft journal entry.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	date, err := dto.ParseEntryDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date (use YYYY-MM-DD)", err.Error())
		return
	}
	lines, err := dto.LinesToDomain(req.Lines)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lines", err.Error())
		return
	}

	entry, err := h.journalUC.CreateEntry(r.Context(), usecase.CreateEntryInput{
		Date:        date,
		Description: req.Description,
		Lines:       lines,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves an entry by ID.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.journalUC.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List lists entries, optionally filtered by date range and status.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := usecase.JournalFilter{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'from' date", err.Error())
			return
		}
		filter.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'to' date", err.Error())
			return
		}
		filter.To = t
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Statuses = []domain.EntryStatus{domain.EntryStatus(status)}
	}

	entries, err := h.journalUC.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// ReplaceLines swaps the line set of a draft entry.
func (h *JournalHandler) ReplaceLines(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.ReplaceLinesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	lines, err := dto.LinesToDomain(req.Lines)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lines", err.Error())
		return
	}

	entry, err := h.journalUC.ReplaceLines(r.Context(), id, lines)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to replace lines", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Approve transitions a draft entry to approved.
func (h *JournalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.journalUC.ApproveEntry)
}

// Cancel transitions an entry to cancelled.
func (h *JournalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.journalUC.CancelEntry)
}

func (h *JournalHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (*domain.JournalEntry, error)) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := op(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "status transition failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}
