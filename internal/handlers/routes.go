package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"fittrack/internal/middleware"
	"fittrack/internal/services"
)

// Deps is everything the router needs; cmd/server builds it once at startup.
type Deps struct {
	Auth      *services.AuthService
	Profiles  *services.ProfileService
	Meals     *services.MealService
	Favorites *services.FavoriteService
	Knowledge *services.KnowledgeService
	Exercises *services.ExerciseService
	Admin     *services.AdminService

	DB      Pinger
	Render  *Renderer
	Limiter *middleware.RateLimiter
	Metrics *middleware.Metrics

	Cookie        CookieOptions
	ShowResetLink bool
	// CORSOrigins lists cross-origin callers allowed on /api; none means same-origin only.
	CORSOrigins []string
	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	TrustProxy bool
	Logger     *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	guard := middleware.NewSessionGuard(d.Auth, d.Logger)
	authHandler := NewAuthHandler(d.Auth, d.Render, d.Cookie, d.ShowResetLink, d.Logger)
	profileHandler := NewProfileHandler(d.Profiles, d.Meals, d.Render, d.Logger)
	knowledgeHandler := NewKnowledgeHandler(d.Knowledge, d.Render, d.Logger)
	mealHandler := NewMealHandler(d.Meals, d.Favorites, d.Render, d.Logger)
	favoriteHandler := NewFavoriteHandler(d.Favorites, d.Meals, d.Logger)
	exerciseHandler := NewExerciseHandler(d.Exercises, d.Meals, d.Logger)
	adminHandler := NewAdminHandler(d.Admin, d.Logger)
	healthHandler := NewHealthHandler(d.DB, d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.ZapRequestLogger(d.Logger))
	r.Use(middleware.Recoverer(d.Logger))
	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument)
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Get("/healthz", healthHandler.Health)

	throttle := func(h http.HandlerFunc) http.Handler {
		if d.Limiter == nil {
			return h
		}
		return d.Limiter.Handler(h)
	}

	r.Get("/", authHandler.LoginPage)
	r.Get("/login", authHandler.LoginPage)
	r.Method(http.MethodPost, "/login", throttle(authHandler.Login))
	r.Get("/register", authHandler.RegisterPage)
	r.Method(http.MethodPost, "/register", throttle(authHandler.Register))
	r.Get("/logout", authHandler.Logout)
	r.Post("/logout", authHandler.Logout)
	r.Get("/reset-password-request", authHandler.ResetRequestPage)
	r.Method(http.MethodPost, "/reset-password-request", throttle(authHandler.ResetRequest))
	r.Get("/reset-password/{token}", authHandler.ResetPage)
	r.Method(http.MethodPost, "/reset-password/{token}", throttle(authHandler.Reset))

	r.Group(func(br chi.Router) {
		br.Use(guard.RequireBrowser)
		br.Get("/dashboard", profileHandler.Dashboard)
		br.Get("/survey", profileHandler.SurveyPage)
		br.Post("/survey", profileHandler.SubmitSurvey)
		br.Get("/profile", profileHandler.ProfilePage)

		br.Get("/knowledge-base", knowledgeHandler.List)
		br.Get("/knowledge-base/{id}", knowledgeHandler.Category)
		br.Post("/knowledge-base/{id}/comments", knowledgeHandler.AddComment)
		br.Post("/knowledge-base/comments/{id}/like", knowledgeHandler.LikeComment)
		br.Post("/knowledge-base/comments/{id}/delete", knowledgeHandler.DeleteComment)

		br.Get("/meal-tracker", mealHandler.Tracker)
		br.Get("/meal-tracker/view/{date}", mealHandler.Day)
		br.Get("/meal-tracker/{year}/{month}", mealHandler.Month)
		br.Post("/meal-tracker/add-meal", mealHandler.AddMealForm)
	})

	r.Route("/api", func(api chi.Router) {
		if len(d.CORSOrigins) > 0 {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins:   d.CORSOrigins,
				AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
				ExposedHeaders:   []string{"Link"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
		}
		api.Use(guard.RequireAPI)

		api.Get("/me", profileHandler.Me)

		api.Post("/meals", mealHandler.Create)
		api.Get("/meals/{id}", mealHandler.Get)
		api.Put("/meals/{id}", mealHandler.Update)
		api.Delete("/meals/{id}", mealHandler.Delete)
		api.Post("/meals/{id}/delete", mealHandler.Delete)

		api.Get("/favorite-meals", favoriteHandler.List)
		api.Post("/favorite-meals", favoriteHandler.Create)
		api.Get("/favorite-meals/{id}", favoriteHandler.Get)
		api.Delete("/favorite-meals/{id}", favoriteHandler.Delete)
		api.Post("/favorite-meals/{id}/apply", favoriteHandler.Apply)

		api.Get("/exercises", exerciseHandler.List)
		api.Post("/exercises", exerciseHandler.Create)
		api.Get("/exercises/{id}", exerciseHandler.Get)
		api.Delete("/exercises/{id}", exerciseHandler.Delete)

		api.Get("/admin/overview", adminHandler.Overview)
	})

	return r
}
