package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/tankermade/internal/config"
	"github.com/msomdec/tankermade/internal/domain"
	"github.com/msomdec/tankermade/internal/handler"
	"github.com/msomdec/tankermade/internal/repository/postgres"
	"github.com/msomdec/tankermade/internal/repository/sqlite"
	"github.com/msomdec/tankermade/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	db, err := openDatabase(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := service.NewTokenIssuer(service.TokenConfig{
		Secret:     cfg.Auth.JWTSecret,
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		Expiration: cfg.Auth.TokenExpiration(),
	})
	authService := service.NewAuthService(db.Users(), hasher, tokens)
	userService := service.NewUserService(db.Users(), hasher)
	catalogService := service.NewCatalogService(db.Catalog())

	if cfg.Admin.Username != "" {
		created, err := authService.EnsureAdmin(context.Background(), service.RegisterInput{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			slog.Error("failed to bootstrap admin", "error", err)
			os.Exit(1)
		}
		slog.Info("admin account checked", "username", cfg.Admin.Username, "created", created)
	}

	limiter := service.NewTokenBucket(cfg.LoginRate.PerSecond, cfg.LoginRate.Burst)
	defer limiter.Close()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Deps{
		Auth:        authService,
		Users:       userService,
		Catalog:     catalogService,
		AuthLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.LogRequests(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openDatabase picks Postgres when DATABASE_URL is set and SQLite otherwise.
func openDatabase(ctx context.Context, cfg *config.Config) (domain.Database, error) {
	if cfg.DatabaseURL != "" {
		slog.Info("using postgres database")
		return postgres.New(ctx, cfg.DatabaseURL)
	}
	slog.Info("using sqlite database", "path", cfg.DatabasePath)
	return sqlite.New(cfg.DatabasePath)
}
