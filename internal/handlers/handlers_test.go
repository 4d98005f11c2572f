package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fittrack/internal/crypto"
	"fittrack/internal/middleware"
	"fittrack/internal/models"
	"fittrack/internal/services"
	"fittrack/internal/store/storetest"
)

const testPassword = "Str0ng!Pass"

type fixture struct {
	t      *testing.T
	mem    *storetest.Memory
	now    time.Time
	auth   *services.AuthService
	meals  *services.MealService
	router http.Handler
}

// withResetLink turns on the development-only reset link display.
func withResetLink(d *Deps) { d.ShowResetLink = true }

// newFixture wires the full router over the in-memory store with a fixed clock:
// Tuesday 2024-12-10 09:30 UTC.
func newFixture(t *testing.T, opts ...func(*Deps)) *fixture {
	t.Helper()
	mem := storetest.NewMemory()
	now := time.Date(2024, 12, 10, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	logger := zap.NewNop()

	sessions := crypto.NewSessionTokens([]byte("handler-test-secret"), time.Hour).WithClock(clock)
	auth := services.NewAuthService(mem, sessions, logger).WithClock(clock)
	meals := services.NewMealService(mem, time.UTC, logger).WithClock(clock)
	render, err := NewRenderer(logger)
	require.NoError(t, err)

	deps := Deps{
		Auth:      auth,
		Profiles:  services.NewProfileService(mem, logger),
		Meals:     meals,
		Favorites: services.NewFavoriteService(mem, mem, logger),
		Knowledge: services.NewKnowledgeService(mem, logger),
		Exercises: services.NewExerciseService(mem, meals, logger),
		Admin:     services.NewAdminService(mem, meals),
		DB:        mem,
		Render:    render,
		Metrics:   middleware.NewMetrics(),
		Cookie:    CookieOptions{MaxAge: 1800},
		Logger:    logger,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	router := NewRouter(deps)
	return &fixture{t: t, mem: mem, now: now, auth: auth, meals: meals, router: router}
}

// signup registers an account and returns it with a session cookie.
func (f *fixture) signup(email, username string) (*models.User, *http.Cookie) {
	f.t.Helper()
	u, token, err := f.auth.Register(context.Background(), services.RegisterInput{
		Email: email, Username: username, Password: testPassword, ConfirmPassword: testPassword,
	})
	require.NoError(f.t, err)
	return u, &http.Cookie{Name: middleware.SessionCookie, Value: token}
}

func (f *fixture) do(method, path string, body io.Reader, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) postForm(path string, values url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	return f.do(http.MethodPost, path, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded", cookie)
}

func (f *fixture) sendJSON(method, path string, v any, cookie *http.Cookie) *httptest.ResponseRecorder {
	b, err := json.Marshal(v)
	require.NoError(f.t, err)
	return f.do(method, path, strings.NewReader(string(b)), "application/json", cookie)
}

func (f *fixture) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	return f.do(http.MethodGet, path, nil, "", cookie)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}
