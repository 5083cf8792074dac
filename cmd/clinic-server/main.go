package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dentalcare/clinic/internal/config"
	"github.com/dentalcare/clinic/internal/domain/records"
	"github.com/dentalcare/clinic/internal/domain/session"
	"github.com/dentalcare/clinic/internal/domain/views"
	"github.com/dentalcare/clinic/internal/platform/auth"
	"github.com/dentalcare/clinic/internal/platform/clock"
	"github.com/dentalcare/clinic/internal/platform/middleware"
	"github.com/dentalcare/clinic/internal/seed"
	"github.com/dentalcare/clinic/internal/storage"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Dental clinic management API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Overwrite the data directory with the demo dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			gw, err := storage.New(cfg.DataDir, logger)
			if err != nil {
				return err
			}
			return seed.Force(gw, logger)
		},
	}
}

func newLogger() zerolog.Logger {
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServer() error {
	// Logger
	logger := newLogger()

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("unsafe configuration")
	}

	// Storage
	gw, err := storage.New(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open data directory")
	}
	if err := seed.EnsureDefaults(gw, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed data directory")
	}
	logger.Info().Str("dir", gw.Dir()).Msg("data directory ready")

	clk := clock.System{}

	// Repositories
	patientRepo, err := records.NewPatientRepo(gw, clk)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load patients")
	}
	incidentRepo, err := records.NewIncidentRepo(gw, clk)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load incidents")
	}
	userRepo, err := session.NewUserRepo(gw)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load users")
	}

	// Services
	recordSvc := records.NewService(patientRepo, incidentRepo)
	viewSvc := views.NewService(recordSvc, clk)
	issuer := auth.NewTokenIssuer(cfg.Secret(), cfg.TokenTTL, clk)
	gate := session.NewGate(userRepo, session.NewFileStore(gw), issuer, clk, logger)

	if _, u, ok := gate.Rehydrate(context.Background()); ok {
		logger.Info().Str("user", u.Email).Msg("rehydrated persisted session")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API groups. The limiter runs after auth so authenticated traffic
	// is keyed per user, not per shared IP.
	rateLimit := middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	})
	public := e.Group("/api/v1", rateLimit)
	api := e.Group("/api/v1", auth.Middleware(issuer), rateLimit)

	session.NewHandler(gate).RegisterRoutes(public, api)
	records.NewHandler(recordSvc, clk).RegisterRoutes(api)
	views.NewHandler(viewSvc, clk).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
