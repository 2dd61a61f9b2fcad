//	@title			Course Cloud API
//	@version		1.0
//	@description	Links course resources to files and folders on a Nextcloud server.
//
//	@host		localhost:8080
//	@BasePath	/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/coursecloud/service/internal/auth"
	"github.com/coursecloud/service/internal/config"
	"github.com/coursecloud/service/internal/db"
	"github.com/coursecloud/service/internal/logging"
	appMiddleware "github.com/coursecloud/service/internal/middleware"
	"github.com/coursecloud/service/internal/nextcloud"
	"github.com/coursecloud/service/internal/provision"
	"github.com/coursecloud/service/internal/resource"

	_ "github.com/coursecloud/service/docs/swagger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL, logger); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	// Wire dependencies: storage client → orchestrator → service → handler
	client := nextcloud.NewClient(cfg.Credentials(),
		nextcloud.WithTimeout(cfg.Nextcloud.Timeout),
		nextcloud.WithLogger(logger.Named("nextcloud")),
	)
	orchestrator := provision.New(client, cfg.Nextcloud.RootFolder, logger.Named("provision"))

	resourceSvc := resource.NewService(resource.NewRepository(pool), orchestrator, resource.Options{
		RestrictDomain: cfg.Nextcloud.RestrictDomain,
		Domain:         cfg.Nextcloud.Domain,
		AutoCreate:     cfg.Nextcloud.AutoCreate,
		Attempts:       cfg.ProvisionAttempts,
	}, logger.Named("resource"))
	resourceHandler := resource.NewHandler(resourceSvc, logger)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(appMiddleware.RequireAuth(issuer))
		resourceHandler.Routes(r)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("nextcloud", cfg.Nextcloud.Host),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
