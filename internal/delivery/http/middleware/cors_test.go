package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name            string
		allowed         []string
		method          string
		origin          string
		preflight       bool
		wantStatus      int
		wantAllow       string
		wantCredentials string
	}{
		{"allowed simple request", []string{" https://app.example.com/ ", ""}, http.MethodGet, "https://app.example.com", false, http.StatusOK, "https://app.example.com", "true"},
		{"unknown origin", []string{"https://app.example.com"}, http.MethodGet, "https://evil.example.com", false, http.StatusOK, "", ""},
		{"allowed preflight", []string{"https://app.example.com"}, http.MethodOptions, "https://app.example.com", true, http.StatusNoContent, "https://app.example.com", "true"},
		{"unknown preflight", []string{"https://app.example.com"}, http.MethodOptions, "https://evil.example.com", true, http.StatusNoContent, "", ""},
		{"wildcard without credentials", []string{"*"}, http.MethodGet, "https://any.example.com", false, http.StatusOK, "*", ""},
		{"plain options reaches handler", []string{"https://app.example.com"}, http.MethodOptions, "https://app.example.com", false, http.StatusOK, "https://app.example.com", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://test/events", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllow, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, rr.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, "Origin", rr.Header().Get("Vary"))
			if tt.preflight && tt.wantAllow != "" {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), RequestIDHeader)
			}
		})
	}
}
