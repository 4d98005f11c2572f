package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fittrack/internal/middleware"
	"fittrack/internal/services"
)

// CookieOptions controls the session cookie written on login and registration.
type CookieOptions struct {
	MaxAge int
	Secure bool
}

type AuthHandler struct {
	auth          *services.AuthService
	render        *Renderer
	cookie        CookieOptions
	showResetLink bool
	logger        *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, render *Renderer, cookie CookieOptions, showResetLink bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, render: render, cookie: cookie, showResetLink: showResetLink, logger: logger}
}

func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cookie.MaxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, http.StatusOK, "login", page{Title: "Log in"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	_, token, err := h.auth.Login(r.Context(), r.PostForm.Get("email"), r.PostForm.Get("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		h.render.HTML(w, http.StatusBadRequest, "login", page{
			Title: "Log in", Error: services.MsgInvalidCredentials, Values: r.PostForm,
		})
		return
	}
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	h.setSession(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, http.StatusOK, "register", page{Title: "Register"})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	_, token, err := h.auth.Register(r.Context(), services.RegisterInput{
		Email:           r.PostForm.Get("email"),
		Username:        r.PostForm.Get("username"),
		Password:        r.PostForm.Get("password"),
		ConfirmPassword: r.PostForm.Get("confirm_password"),
	})
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		values := r.PostForm
		values.Del("password")
		values.Del("confirm_password")
		h.render.HTML(w, http.StatusBadRequest, "register", page{Title: "Register", Error: verr.Message, Values: values})
		return
	}
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	h.setSession(w, token)
	http.Redirect(w, r, "/survey", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) ResetRequestPage(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, http.StatusOK, "reset_request", page{Title: "Reset password"})
}

type resetRequestData struct {
	ResetURL string
}

func (h *AuthHandler) ResetRequest(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	token, err := h.auth.RequestPasswordReset(r.Context(), r.PostForm.Get("email"))
	if err != nil {
		h.logger.Error("password reset request", zap.Error(err))
		h.render.HTML(w, http.StatusInternalServerError, "reset_request", page{
			Title: "Reset password", Error: "An error occurred. Please try again.",
		})
		return
	}
	p := page{Title: "Reset password", Success: services.MsgResetRequested}
	if h.showResetLink && token != "" {
		p.Data = resetRequestData{ResetURL: "/reset-password/" + token}
	}
	h.render.HTML(w, http.StatusOK, "reset_request", p)
}

type resetData struct {
	Token string
}

func (h *AuthHandler) invalidResetLink(w http.ResponseWriter) {
	h.render.HTML(w, http.StatusBadRequest, "reset_request", page{
		Title: "Reset password", Error: services.MsgInvalidResetToken,
	})
}

func (h *AuthHandler) ResetPage(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	err := h.auth.CheckResetToken(r.Context(), token)
	if errors.Is(err, services.ErrInvalidResetToken) {
		h.invalidResetLink(w)
		return
	}
	if err != nil {
		pageError(w, h.logger, err, "")
		return
	}
	h.render.HTML(w, http.StatusOK, "reset_password", page{Title: "Choose a new password", Data: resetData{Token: token}})
}

func (h *AuthHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	token := chi.URLParam(r, "token")
	err := h.auth.ResetPassword(r.Context(), token, r.PostForm.Get("password"), r.PostForm.Get("confirm_password"))
	var verr *services.ValidationError
	switch {
	case err == nil:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, services.ErrInvalidResetToken):
		h.invalidResetLink(w)
	case errors.As(err, &verr):
		h.render.HTML(w, http.StatusBadRequest, "reset_password", page{
			Title: "Choose a new password", Error: verr.Message, Data: resetData{Token: token},
		})
	default:
		pageError(w, h.logger, err, "")
	}
}
