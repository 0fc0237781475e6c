package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tradingconf/registration/internal/config"
	"github.com/tradingconf/registration/internal/handler"
	"github.com/tradingconf/registration/internal/identity"
	"github.com/tradingconf/registration/internal/logger"
	"github.com/tradingconf/registration/internal/middleware"
	"github.com/tradingconf/registration/internal/migrations"
	"github.com/tradingconf/registration/internal/repository"
	"github.com/tradingconf/registration/internal/router"
	"github.com/tradingconf/registration/internal/service"
	"github.com/tradingconf/registration/internal/storage"
)

const (
	upstreamTimeout = 15 * time.Second
	shutdownTimeout = 5 * time.Second
	limiterIdle     = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	lg := logger.New("registration-api", cfg.IsProduction())
	defer func() { _ = lg.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewPostgresDB(ctx, cfg.Database.DSN())
	if err != nil {
		lg.Fatalw("failed to connect to database", "error", err)
	}
	defer func() { _ = db.Close() }()

	if cfg.Database.Migrate {
		if err := migrations.Apply(ctx, db); err != nil {
			lg.Fatalw("failed to apply migrations", "error", err)
		}
		lg.Infow("migrations applied")
	}

	verifier := identity.NewVerifier(identity.Config{
		URL:       cfg.Supabase.URL,
		APIKey:    authAPIKey(cfg.Supabase),
		JWTSecret: cfg.Supabase.JWTSecret,
		Timeout:   upstreamTimeout,
	})

	bucket, err := storage.NewBucket(storage.Config{
		URL:        cfg.Supabase.URL,
		ServiceKey: cfg.Supabase.ServiceKey,
		Bucket:     cfg.Resume.Bucket,
		Timeout:    upstreamTimeout,
	})
	if err != nil {
		lg.Fatalw("failed to configure resume storage", "error", err)
	}

	applicationService := service.NewApplicationService(db, bucket, cfg.Resume.MaxBytes, lg.With("component", "application"))
	teamService := service.NewTeamService(db, lg.With("component", "team"))
	inviteService := service.NewInviteService(db, lg.With("component", "invite"))
	userService := service.NewUserService(db)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, lg)
	limiter.StartCleanup(ctx, limiterIdle)

	r := router.SetupRoutes(router.Handlers{
		Application: handler.NewApplicationHandler(applicationService, cfg.Resume.MaxBytes),
		Team:        handler.NewTeamHandler(teamService),
		Invite:      handler.NewInviteHandler(inviteService),
		User:        handler.NewUserHandler(userService),
	}, router.Options{
		Verifier:    verifier,
		RateLimiter: limiter,
		Logger:      lg,
	})

	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Infow("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalw("failed to start server", "error", err)
		}
	}()

	<-ctx.Done()
	lg.Infow("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Errorw("server forced to shutdown", "error", err)
		return
	}

	lg.Infow("server exited")
}

// authAPIKey picks the key sent to the auth endpoint, preferring the anon key.
func authAPIKey(cfg config.SupabaseConfig) string {
	if cfg.AnonKey != "" {
		return cfg.AnonKey
	}
	return cfg.ServiceKey
}
