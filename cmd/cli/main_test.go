package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintResponse_PrettyPrintsJSON(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"id":"e1","status":"draft"}`)),
	}

	out := captureOutput(t, func() {
		printResponse(resp)
	})

	expected := "{\n  \"id\": \"e1\",\n  \"status\": \"draft\"\n}\n"
	if out != expected {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"code":"101"}]`))
	}))
	defer server.Close()

	baseURL = server.URL
	timeout = 5 * time.Second

	out := captureOutput(t, func() {
		getJSON("/api/v1/accounts/")
	})

	if !strings.Contains(out, `"code": "101"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPreviewFile(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/imports/preview" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rows":[]}`))
	}))
	defer server.Close()

	file, err := os.CreateTemp(t.TempDir(), "stmt-*.csv")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	if _, err := file.WriteString("日付,摘要,金額\n"); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	_ = file.Close()

	baseURL = server.URL
	timeout = 5 * time.Second

	out := captureOutput(t, func() {
		previewFile(file.Name(), "utf-8", ",", true, 0, "")
	})

	if !strings.Contains(string(gotBody), `"encoding":"utf-8"`) {
		t.Errorf("request body missing encoding: %s", gotBody)
	}
	if !strings.Contains(string(gotBody), `"has_headers":true`) {
		t.Errorf("request body missing header flag: %s", gotBody)
	}
	if !strings.Contains(out, `"rows": []`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
