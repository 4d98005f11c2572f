package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"fittrack/internal/middleware"
)

func (f *fixture) withHeaders(req *http.Request, headers map[string]string) *httptest.ResponseRecorder {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) loginFrom(forwardedFor string) int {
	body := url.Values{"email": {"x@example.com"}, "password": {"wrong"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	return f.withHeaders(req, map[string]string{
		"Content-Type":    "application/x-www-form-urlencoded",
		"X-Forwarded-For": forwardedFor,
	}).Code
}

func withLimiter(d *Deps) { d.Limiter = middleware.NewRateLimiter(1, 1, zap.NewNop()) }

func TestLoginThrottleIgnoresForwardedFor(t *testing.T) {
	f := newFixture(t, withLimiter)

	assert.NotEqual(t, http.StatusTooManyRequests, f.loginFrom("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, f.loginFrom("203.0.113.2"))
}

func TestLoginThrottleBehindTrustedProxy(t *testing.T) {
	f := newFixture(t, withLimiter, func(d *Deps) { d.TrustProxy = true })

	assert.NotEqual(t, http.StatusTooManyRequests, f.loginFrom("203.0.113.1"))
	assert.NotEqual(t, http.StatusTooManyRequests, f.loginFrom("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, f.loginFrom("203.0.113.2"))
}

func TestCORS(t *testing.T) {
	const allowed = "https://app.example.com"
	origin := func(f *fixture, from string) string {
		_, c := f.signup("alice@example.com", "alice")
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.AddCookie(c)
		return f.withHeaders(req, map[string]string{"Origin": from}).Header().Get("Access-Control-Allow-Origin")
	}

	assert.Empty(t, origin(newFixture(t), allowed))

	configured := func(d *Deps) { d.CORSOrigins = []string{allowed} }
	assert.Equal(t, allowed, origin(newFixture(t, configured), allowed))
	assert.Empty(t, origin(newFixture(t, configured), "https://evil.example.com"))
}
