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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/teleconsult/teleconsult/internal/config"
	"github.com/teleconsult/teleconsult/internal/docgen"
	"github.com/teleconsult/teleconsult/internal/domain/consultation"
	"github.com/teleconsult/teleconsult/internal/domain/doctor"
	"github.com/teleconsult/teleconsult/internal/domain/patient"
	"github.com/teleconsult/teleconsult/internal/platform/ai"
	"github.com/teleconsult/teleconsult/internal/platform/aicache"
	"github.com/teleconsult/teleconsult/internal/platform/auth"
	"github.com/teleconsult/teleconsult/internal/platform/db"
	"github.com/teleconsult/teleconsult/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "teleconsult-server",
		Short: "Telemedicine consultation and clinical document generation server",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	var migrationsDir string
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(migrationsDir, false)
		},
	}
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "migrations directory")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(migrationsDir, true)
		},
	}
	migrateCmd.AddCommand(statusCmd)

	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}
	log.Logger = logger
	return logger
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	var cache *aicache.Cache
	if cfg.RedisURL != "" {
		cache, err = aicache.New(cfg.RedisURL, time.Hour)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer cache.Close()
		if err := cache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, ai cache disabled")
			cache = nil
		}
	}

	var provider ai.Provider
	if cfg.OpenAIAPIKey != "" {
		client, err := ai.NewClient(ai.Config{
			APIKey:         cfg.OpenAIAPIKey,
			Model:          cfg.OpenAIModel,
			BaseURL:        cfg.OpenAIBaseURL,
			RateLimitRPM:   cfg.OpenAIRateRPM,
			RateLimitBurst: cfg.OpenAIRateBurst,
		})
		if err != nil {
			return fmt.Errorf("init ai client: %w", err)
		}
		defer client.Close()
		provider = client
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set, document generation will use fallback templates")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"service": "teleconsult-server", "status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool,
		db.Check{Name: "ai_provider", Ping: func(ctx context.Context) error {
			if provider == nil {
				return errors.New("not configured")
			}
			return nil
		}},
		db.Check{Name: "cache", Ping: cache.Ping},
	))

	api := e.Group("/api/v1")
	if cfg.IsDev() && cfg.JWTSecret == "" {
		api.Use(auth.DevAuthMiddleware())
	} else {
		api.Use(auth.JWTMiddleware(auth.JWTConfig{SigningKey: []byte(cfg.JWTSecret)}))
	}

	patientRepo := patient.NewRepoPG(pool)
	patientSvc := patient.NewService(patientRepo)
	patient.NewHandler(patientSvc).RegisterRoutes(api)

	doctorRepo := doctor.NewRepoPG(pool)
	doctorSvc := doctor.NewService(doctorRepo)
	doctor.NewHandler(doctorSvc).RegisterRoutes(api)

	generator := docgen.NewGenerator(docgen.ClinicInfo{
		Name:    cfg.ClinicName,
		Address: cfg.ClinicAddress,
		Phone:   cfg.ClinicPhone,
	})
	consultRepo := consultation.NewRepoPG(pool)
	consultSvc := consultation.NewService(consultRepo, patientRepo, doctorRepo, provider, cache, generator, db.NewTxRunner(pool))
	consultation.NewHandler(consultSvc).RegisterRoutes(api)

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func runMigrations(dir string, statusOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := setupLogger(cfg)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, 2, 1)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	migrator := db.NewMigrator(pool, dir)
	if err := migrator.EnsureMigrationsTable(ctx); err != nil {
		return err
	}

	if statusOnly {
		statuses, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			logger.Info().Int("version", s.Version).Str("name", s.Name).Str("state", state).Msg("migration")
		}
		return nil
	}

	applied, err := migrator.Up(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("applied", applied).Msg("migrations complete")
	return nil
}
