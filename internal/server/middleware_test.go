package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"skillfit/internal/config"
	"skillfit/internal/errors"
)

func newTestServer(t *testing.T, apiKeys ...string) *Server {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return NewServer(&config.Config{}, ServerConfig{
		Host:    "localhost",
		Port:    "8080",
		Version: "test",
		APIKeys: apiKeys,
	}, logger)
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		apiKeys    []string
		header     string
		value      string
		wantStatus int
	}{
		{
			name:       "no keys configured allows all",
			apiKeys:    nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			apiKeys:    []string{"secret-key-12345"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid key rejected",
			apiKeys:    []string{"secret-key-12345"},
			header:     "X-API-Key",
			value:      "wrong-key",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid key accepted",
			apiKeys:    []string{"secret-key-12345"},
			header:     "X-API-Key",
			value:      "secret-key-12345",
			wantStatus: http.StatusOK,
		},
		{
			name:       "bearer token accepted",
			apiKeys:    []string{"secret-key-12345"},
			header:     "Authorization",
			value:      "Bearer secret-key-12345",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.apiKeys...)
			handler := s.authMiddleware(okHandler)

			req := httptest.NewRequest(http.MethodPost, "/v1/coverage", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer(t)

	t.Run("generates id when absent", func(t *testing.T) {
		var seen string
		handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
			seen = requestIDFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		if seen == "" {
			t.Error("expected a generated request id in context")
		}
		if got := rec.Header().Get("X-Request-ID"); got != seen {
			t.Errorf("response header = %q, context id = %q", got, seen)
		}
	})

	t.Run("honors caller-provided id", func(t *testing.T) {
		var seen string
		handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
			seen = requestIDFromContext(r.Context())
		})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "caller-id-1")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if seen != "caller-id-1" {
			t.Errorf("context id = %q, want caller-id-1", seen)
		}
	})
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		headers  map[string]string
		want     string
	}{
		{
			name:     "api key preferred",
			byAPIKey: true,
			byIP:     true,
			headers:  map[string]string{"X-API-Key": "key-1"},
			want:     "api:key-1",
		},
		{
			name:     "bearer token fallback",
			byAPIKey: true,
			headers:  map[string]string{"Authorization": "Bearer key-2"},
			want:     "api:key-2",
		},
		{
			name: "ip fallback",
			byIP: true,
			want: "ip:192.0.2.1",
		},
		{
			name: "nothing enabled",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:54321"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := getRateLimitKey(req, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "x-forwarded-for first entry wins",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.8"},
			want:       "203.0.113.8",
		},
		{
			name:       "invalid forwarded headers fall through",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:       "10.0.0.1",
		},
		{
			name:       "remote addr fallback",
			remoteAddr: "10.0.0.3:9999",
			want:       "10.0.0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimiterAllow(t *testing.T) {
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	rl := NewRateLimiter(60, time.Minute, 2, logger)
	defer rl.Close()

	if !rl.Allow("client-a") {
		t.Error("first request should be allowed")
	}
	if !rl.Allow("client-a") {
		t.Error("second request should be within burst capacity")
	}
	if rl.Allow("client-a") {
		t.Error("third immediate request should exceed burst capacity")
	}

	// A different key gets its own bucket
	if !rl.Allow("client-b") {
		t.Error("separate client should have an independent bucket")
	}

	stats := rl.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
	if stats["burst_capacity"] != 2 {
		t.Errorf("burst_capacity = %v, want 2", stats["burst_capacity"])
	}
}

func TestParseJSONRequest(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     bool
	}{
		{
			name:        "valid json",
			contentType: "application/json",
			body:        `{"rawText": "Senior Go Engineer"}`,
			wantErr:     false,
		},
		{
			name:        "json with charset",
			contentType: "application/json; charset=utf-8",
			body:        `{"rawText": "Senior Go Engineer"}`,
			wantErr:     false,
		},
		{
			name:        "missing content type accepted",
			contentType: "",
			body:        `{"rawText": "Senior Go Engineer"}`,
			wantErr:     false,
		},
		{
			name:        "wrong content type",
			contentType: "text/plain",
			body:        `{"rawText": "Senior Go Engineer"}`,
			wantErr:     true,
		},
		{
			name:        "malformed json",
			contentType: "application/json",
			body:        `{"rawText": `,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/jobs/parse", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var dst ParseJobRequest
			err := parseJSONRequest(req, &dst)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseJSONRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && dst.RawText != "Senior Go Engineer" {
				t.Errorf("rawText = %q, want %q", dst.RawText, "Senior Go Engineer")
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		apiKey string
		want   string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.apiKey); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.apiKey, got, tt.want)
		}
	}
}
