package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/adapter/http/dto"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase/mocks"
)

func newAccountHandler() (*AccountHandler, *mocks.MockAccountRepository) {
	repo := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(repo, &mocks.MockIDGenerator{}, nil, 0)
	return NewAccountHandler(uc), repo
}

func TestAccountHandler_Create_Success(t *testing.T) {
	h, _ := newAccountHandler()

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code: "101",
		Name: "現金",
		Type: "asset",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "101" || resp.Name != "現金" || resp.Type != "asset" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ID == "" {
		t.Fatal("expected generated ID")
	}
	if !resp.IsActive {
		t.Fatal("expected new account to be active")
	}
}

func TestAccountHandler_Create_InvalidBody(t *testing.T) {
	h, _ := newAccountHandler()

	req := httptest.NewRequest(http.MethodPost, "/accounts", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_UnknownType(t *testing.T) {
	h, _ := newAccountHandler()

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code: "101",
		Name: "現金",
		Type: "income",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_DuplicateCode(t *testing.T) {
	h, repo := newAccountHandler()
	repo.Seed(&domain.Account{ID: "a1", Code: "101", Name: "現金", Type: domain.AccountTypeAsset, IsActive: true})

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code: "101",
		Name: "小口現金",
		Type: "asset",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate code, got %d", rec.Code)
	}
}

func TestAccountHandler_Get(t *testing.T) {
	h, repo := newAccountHandler()
	repo.Seed(&domain.Account{ID: "a1", Code: "101", Name: "現金", Type: domain.AccountTypeAsset, IsActive: true})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/a1", nil), "id", "a1")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "a1" {
		t.Fatalf("expected account a1, got %s", resp.ID)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	h, _ := newAccountHandler()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	h, repo := newAccountHandler()
	repo.Seed(
		&domain.Account{ID: "a1", Code: "101", Name: "現金", Type: domain.AccountTypeAsset, IsActive: true},
		&domain.Account{ID: "a2", Code: "401", Name: "売上高", Type: domain.AccountTypeRevenue, IsActive: true},
	)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Code != "101" || resp[1].Code != "401" {
		t.Fatalf("unexpected accounts: %+v", resp)
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
