package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fittrack/internal/config"
	"fittrack/internal/crypto"
	"fittrack/internal/db"
	"fittrack/internal/handlers"
	"fittrack/internal/logging"
	mw "fittrack/internal/middleware"
	"fittrack/internal/services"
	"fittrack/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	for _, name := range cfg.InsecureDefaults() {
		logger.Warn("insecure setting in use; change it before deploying", zap.String("setting", name))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	dbConn, err := db.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpen)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if created, err := db.EnsureSuperuser(ctx, dbConn, cfg.FirstSuperuserEmail, cfg.FirstSuperuserPasswd); err != nil {
		return err
	} else if created {
		logger.Info("created initial superuser", zap.String("email", cfg.FirstSuperuserEmail))
	}
	if n, err := db.SeedKnowledgeCategories(ctx, dbConn); err != nil {
		return err
	} else if n > 0 {
		logger.Info("seeded knowledge base", zap.Int("categories", n))
	}

	st := store.New(dbConn)
	sessions := crypto.NewSessionTokens([]byte(cfg.SecretKey), cfg.AccessTokenTTL())
	meals := services.NewMealService(st, cfg.Location(), logger)

	render, err := handlers.NewRenderer(logger)
	if err != nil {
		return err
	}

	limiter := mw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	limiter.StartCleanup(time.Minute, ctx.Done())

	router := handlers.NewRouter(handlers.Deps{
		Auth:          services.NewAuthService(st, sessions, logger),
		Profiles:      services.NewProfileService(st, logger),
		Meals:         meals,
		Favorites:     services.NewFavoriteService(st, st, logger),
		Knowledge:     services.NewKnowledgeService(st, logger),
		Exercises:     services.NewExerciseService(st, meals, logger),
		Admin:         services.NewAdminService(st, meals),
		DB:            st,
		Render:        render,
		Limiter:       limiter,
		Metrics:       mw.NewMetrics(),
		Cookie:        handlers.CookieOptions{MaxAge: cfg.SessionCookieMaxAge, Secure: cfg.CookieSecure},
		ShowResetLink: cfg.ShowResetLink,
		CORSOrigins:   cfg.AllowedOrigins(),
		TrustProxy:    cfg.TrustProxy,
		Logger:        logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
