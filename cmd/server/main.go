// Command server runs the attendance and leave-management HTTP API.
//
// Startup order:
//  1. Load .env (best effort) and the environment configuration
//  2. Configure logging and OpenTelemetry tracing
//  3. Open SQLite, migrate the schema, seed the bootstrap admin
//  4. Dial the AI gateway when an API key is configured
//  5. Mount routes and serve until SIGINT/SIGTERM, then drain
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zenwork/go-attendance-backend/internal/assistant"
	"github.com/zenwork/go-attendance-backend/internal/config"
	httpapi "github.com/zenwork/go-attendance-backend/internal/http"
	"github.com/zenwork/go-attendance-backend/internal/observability"
	"github.com/zenwork/go-attendance-backend/internal/repo"
	"github.com/zenwork/go-attendance-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; the environment wins on conflicts.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(shutCtx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if cfg.SeedAdmin {
		if err := repo.SeedDefaultAdmin(db, cfg.Leave.DefaultBalance); err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
	}

	// The assistant degrades to a fixed apology when no gateway is configured.
	var completer assistant.Completer
	if cfg.AI.APIKey != "" {
		gem, err := assistant.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Temperature)
		if err != nil {
			log.Fatal().Err(err).Msg("ai gateway dial failed")
		}
		defer func() { _ = gem.Close() }()
		completer = gem
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set; assistant replies with the fallback message")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, completer, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
