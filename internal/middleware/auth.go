package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"fittrack/internal/models"
	"fittrack/internal/services"
)

// SessionCookie carries the signed session token.
const SessionCookie = "access_token"

// Authenticator resolves a session token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type userKey struct{}

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// CurrentUser returns the user placed on ctx by the session guard, or nil.
func CurrentUser(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey{}).(*models.User)
	return u
}

// TokenFromRequest reads the session token from the cookie, falling back to an
// Authorization: Bearer header. The cookie value may itself carry a "Bearer " prefix.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return strings.TrimSpace(strings.TrimPrefix(c.Value, "Bearer "))
	}
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}

type SessionGuard struct {
	auth   Authenticator
	logger *zap.Logger
}

func NewSessionGuard(auth Authenticator, logger *zap.Logger) *SessionGuard {
	return &SessionGuard{auth: auth, logger: logger}
}

// Resolve returns the request's user, or nil when there is no valid session.
func (g *SessionGuard) Resolve(r *http.Request) (*models.User, error) {
	token := TokenFromRequest(r)
	if token == "" {
		return nil, nil
	}
	u, err := g.auth.Authenticate(r.Context(), token)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return nil, nil
	}
	return u, err
}

// RequireBrowser redirects anonymous visitors to the login page.
func (g *SessionGuard) RequireBrowser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := g.Resolve(r)
		if err != nil {
			g.logger.Error("resolve session", zap.Error(err))
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		if u == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// RequireAPI answers anonymous requests with 401 and a JSON detail.
func (g *SessionGuard) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := g.Resolve(r)
		if err != nil {
			g.logger.Error("resolve session", zap.Error(err))
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if u == nil {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
