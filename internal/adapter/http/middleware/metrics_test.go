package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/journal-entries/01JXYZ", "/api/v1/journal-entries/:id"},
		{"/api/v1/journal-entries/01JXYZ/approve", "/api/v1/journal-entries/:id/approve"},
		{"/api/v1/journal-entries/01JXYZ/lines", "/api/v1/journal-entries/:id/lines"},
		{"/api/v1/accounts/01JXYZ", "/api/v1/accounts/:id"},
		{"/api/v1/ledger/01JXYZ/aging", "/api/v1/ledger/:id/aging"},
		{"/api/v1/rules/01JXYZ", "/api/v1/rules/:id"},
		{"/api/v1/journal-entries", "/api/v1/journal-entries"},
		{"/api/v1/imports/preview", "/api/v1/imports/preview"},
		{"/health", "/health"},
	}
	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
