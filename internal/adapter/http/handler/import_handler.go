package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/dto"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

// ImportHandler handles statement import requests.
type ImportHandler struct {
	importUC          *usecase.ImportUseCase
	defaultDateFormat string
}

// NewImportHandler creates a new ImportHandler. defaultDateFormat is
// applied when a request does not name one.
func NewImportHandler(importUC *usecase.ImportUseCase, defaultDateFormat string) *ImportHandler {
	return &ImportHandler{importUC: importUC, defaultDateFormat: defaultDateFormat}
}

// Preview decodes and classifies an uploaded statement, returning
// normalized rows with suggestions and duplicate flags for human review.
func (h *ImportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid base64 data", err.Error())
		return
	}

	if req.DateFormat == "" {
		req.DateFormat = h.defaultDateFormat
	}

	preview, err := h.importUC.Preview(r.Context(), usecase.ImportInput{
		Data:       data,
		Encoding:   req.Encoding,
		Delimiter:  req.Delimiter,
		HasHeader:  req.HasHeaders,
		SkipRows:   req.SkipRows,
		MaxRows:    req.MaxRows,
		DateFormat: req.DateFormat,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "import preview failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PreviewFromUsecase(preview))
}

// Commit posts human-confirmed rows as approved journal entries.
// Per-row validation failures block the row's entry only.
func (h *ImportHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportCommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "no rows to commit", "")
		return
	}

	rows, err := req.ToUsecase()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid commit rows", err.Error())
		return
	}

	result, err := h.importUC.Commit(r.Context(), rows)
	if err != nil {
		writeError(w, mapDomainError(err), "import commit failed", err.Error())
		return
	}

	resp := dto.CommitResponse{EntryIDs: result.EntryIDs}
	for _, f := range result.Failures {
		resp.Failures = append(resp.Failures, dto.CommitFailureResponse{
			RowIndex: f.RowIndex,
			Reason:   f.Reason,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
