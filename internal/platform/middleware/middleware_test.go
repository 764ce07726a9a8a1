// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/agora/internal/platform/ctxutil"
	"github.com/taibuivan/agora/internal/platform/middleware"
	"github.com/taibuivan/agora/internal/platform/sec"
	"github.com/taibuivan/agora/internal/session"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeVerifier accepts exactly one token.
type fakeVerifier struct {
	token  string
	claims *sec.AuthClaims
}

func (verifier fakeVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != verifier.token {
		return nil, sec.ErrInvalidToken
	}
	return verifier.claims, nil
}

type fakeConfig struct {
	development bool
	origins     []string
}

func (c fakeConfig) IsDevelopment() bool      { return c.development }
func (c fakeConfig) AllowedOrigins() []string { return c.origins }

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "given")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "given", seen)
}

/*
TestRateLimitWith verifies that the bucket is per client IP.
*/
func TestRateLimitWith(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimitWith(ctx, 0.001, 1)(okHandler())

	call := func(ip string) int {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Real-IP", ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Real-IP", "10.0.0.1")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "1000", recorder.Header().Get("Retry-After"))
	assert.Contains(t, recorder.Body.String(), `"code":"RATE_LIMITED"`)
}

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(discard)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.NotContains(t, recorder.Body.String(), "boom")
}

func TestStructuredLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.RequestID()(middleware.StructuredLogger(logger)(
		http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctxutil.GetLogger(request.Context()).Info("inside")
			writer.WriteHeader(http.StatusNotFound)
		}),
	))

	request := httptest.NewRequest(http.MethodGet, "/api/v1/events/filters", nil)
	request.Header.Set("X-Request-ID", "trace-1")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"request_id":"trace-1"`)
	assert.Contains(t, lines[1], `"msg":"http_request_finished"`)
	assert.Contains(t, lines[1], `"level":"WARN"`)
	assert.Contains(t, lines[1], `"status":404`)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		config  fakeConfig
		origin  string
		allowed bool
	}{
		{"development_any", fakeConfig{development: true}, "http://localhost:3000", true},
		{"production_suffix", fakeConfig{}, "https://www.agora.app", true},
		{"production_extra", fakeConfig{origins: []string{"https://partner.example"}}, "https://partner.example", true},
		{"production_denied", fakeConfig{}, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodOptions, "/api/v1/events/filters", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.config)(okHandler()).ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestAuthenticate checks session injection for anonymous and verified requests.
*/
func TestAuthenticate(t *testing.T) {
	verifier := fakeVerifier{token: "good", claims: &sec.AuthClaims{Username: "cluse", Role: "member"}}

	var state *session.State
	handler := middleware.Authenticate(verifier, session.WithTheme("light"))(
		http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			state = ctxutil.GetSession(request.Context())
			writer.WriteHeader(http.StatusOK)
		}),
	)

	tests := []struct {
		name     string
		header   string
		status   int
		username string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"verified", "Bearer good", http.StatusOK, "cluse"},
		{"lowercase_scheme", "bearer good", http.StatusOK, "cluse"},
		{"bad_scheme", "Basic good", http.StatusUnauthorized, ""},
		{"bad_token", "Bearer nope", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state = nil
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			require.Equal(t, tt.status, recorder.Code)
			if tt.status != http.StatusOK {
				assert.Nil(t, state)
				return
			}
			require.NotNil(t, state)
			assert.Equal(t, tt.username, state.Username())
			assert.Equal(t, tt.username != "", state.IsAuthenticated())
			assert.Equal(t, "light", state.Theme())
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := fakeVerifier{token: "admin", claims: &sec.AuthClaims{Username: "root", Role: "admin"}}
	handler := middleware.Authenticate(admin)(middleware.RequireRole(sec.RoleAdmin)(okHandler()))

	anonymous := httptest.NewRecorder()
	handler.ServeHTTP(anonymous, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	request := httptest.NewRequest(http.MethodPost, "/", nil)
	request.Header.Set("Authorization", "Bearer admin")
	allowed := httptest.NewRecorder()
	handler.ServeHTTP(allowed, request)
	assert.Equal(t, http.StatusOK, allowed.Code)

	member := fakeVerifier{token: "m", claims: &sec.AuthClaims{Username: "m", Role: "member"}}
	memberHandler := middleware.Authenticate(member)(middleware.RequireRole(sec.RoleAdmin)(okHandler()))
	request = httptest.NewRequest(http.MethodPost, "/", nil)
	request.Header.Set("Authorization", "Bearer m")
	denied := httptest.NewRecorder()
	memberHandler.ServeHTTP(denied, request)
	assert.Equal(t, http.StatusForbidden, denied.Code)
}

func TestRequireAuth(t *testing.T) {
	recorder := httptest.NewRecorder()
	middleware.RequireAuth(okHandler()).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
