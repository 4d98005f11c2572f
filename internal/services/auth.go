package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fittrack/internal/crypto"
	"fittrack/internal/models"
	"fittrack/internal/store"
)

const resetTokenTTL = 24 * time.Hour

type AuthService struct {
	users    UserStore
	sessions *crypto.SessionTokens
	policy   crypto.PasswordPolicy
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(users UserStore, sessions *crypto.SessionTokens, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		policy:   crypto.DefaultPasswordPolicy,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	cp := *s
	cp.now = now
	return &cp
}

type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkNewPassword applies the confirmation and policy rules shared by register and reset.
func (s *AuthService) checkNewPassword(password, confirm string) error {
	if password != confirm {
		return invalid(MsgPasswordMismatch)
	}
	if problems := s.policy.Validate(password); len(problems) > 0 {
		return &ValidationError{Message: problems[0], Fields: map[string]string{"password": problems[0]}}
	}
	return nil
}

// Register creates an active account and returns it along with a fresh session token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)
	if email == "" || username == "" {
		return nil, "", invalid("Email and username are required")
	}
	if err := s.checkNewPassword(in.Password, in.ConfirmPassword); err != nil {
		return nil, "", err
	}

	if _, err := s.users.UserByEmail(ctx, email); err == nil {
		return nil, "", invalid(MsgEmailRegistered)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}
	if _, err := s.users.UserByUsername(ctx, username); err == nil {
		return nil, "", invalid(MsgUsernameTaken)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{Email: email, Username: username, HashedPassword: hashed, IsActive: true}
	if err := s.users.CreateUser(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, store.ErrConflict) {
			if strings.Contains(err.Error(), "username") {
				return nil, "", invalid(MsgUsernameTaken)
			}
			return nil, "", invalid(MsgEmailRegistered)
		}
		return nil, "", err
	}

	token, err := s.sessions.Issue(u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	s.logger.Info("user registered", zap.Int("user_id", u.ID))
	return u, token, nil
}

// Login verifies credentials. Unknown email, wrong password and inactive account are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.UserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !crypto.CheckPassword(u.HashedPassword, password) || !u.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.sessions.Issue(u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue session: %w", err)
	}
	return u, token, nil
}

// Authenticate resolves a session token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	email, err := s.sessions.Subject(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// RequestPasswordReset stores a new 24h token for the account and returns it. For an unknown
// email it returns an empty token and no error so callers cannot enumerate accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.users.UserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	token, err := crypto.NewResetToken()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	if err := s.users.SetResetToken(ctx, u.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	s.logger.Info("password reset requested", zap.Int("user_id", u.ID))
	return token, nil
}

// CheckResetToken reports ErrInvalidResetToken for unknown or expired tokens.
func (s *AuthService) CheckResetToken(ctx context.Context, token string) error {
	u, err := s.users.UserByResetToken(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInvalidResetToken
	}
	if err != nil {
		return err
	}
	if !u.ResetTokenValid(s.now()) {
		return ErrInvalidResetToken
	}
	return nil
}

// ResetPassword replaces the password and clears the token. The token is checked before
// the new password so an expired link never reports password rule failures.
func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	if err := s.CheckResetToken(ctx, token); err != nil {
		return err
	}
	if err := s.checkNewPassword(password, confirm); err != nil {
		return err
	}
	hashed, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.ConsumeResetToken(ctx, token, hashed, s.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	return nil
}
