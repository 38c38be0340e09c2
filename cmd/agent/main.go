package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/fireflies-agent/pkg/validator"

	"github.com/johnquangdev/fireflies-agent/internal/adapter/handler"
	"github.com/johnquangdev/fireflies-agent/internal/adapter/presenter"
	"github.com/johnquangdev/fireflies-agent/internal/adapter/repository"
	domainrepo "github.com/johnquangdev/fireflies-agent/internal/domain/repositories"
	"github.com/johnquangdev/fireflies-agent/internal/infrastructure/cache"
	"github.com/johnquangdev/fireflies-agent/internal/infrastructure/database"
	"github.com/johnquangdev/fireflies-agent/internal/infrastructure/external/airtable"
	"github.com/johnquangdev/fireflies-agent/internal/infrastructure/external/fireflies"
	"github.com/johnquangdev/fireflies-agent/internal/infrastructure/external/gcalendar"
	"github.com/johnquangdev/fireflies-agent/internal/infrastructure/external/gmail"
	"github.com/johnquangdev/fireflies-agent/internal/infrastructure/external/mock"
	openaiclient "github.com/johnquangdev/fireflies-agent/internal/infrastructure/external/openai"
	"github.com/johnquangdev/fireflies-agent/internal/infrastructure/storage"
	"github.com/johnquangdev/fireflies-agent/internal/usecase/dispatch"
	"github.com/johnquangdev/fireflies-agent/internal/usecase/extract"
	"github.com/johnquangdev/fireflies-agent/internal/usecase/run"
	"github.com/johnquangdev/fireflies-agent/pkg/config"
)

func main() {
	meetingID := flag.String("meeting", "", "run once for this meeting id and print the report")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize transcript source and model provider (mock-first)
	var source extract.TranscriptProvider
	var provider extract.LanguageModelProvider
	if cfg.Agent.UseMock {
		log.Println("🤖 Running in MOCK mode (no provider credentials)")
		source = mock.NewTranscriptProvider()
		provider = mock.NewModelProvider()
	} else {
		source = fireflies.NewClient(&cfg.Fireflies)
		provider = openaiclient.NewClient(&cfg.OpenAI)
	}

	// Initialize delivery guard
	var guard run.DeliveryGuard
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		guard = cache.NewRedisGuard(redisClient)
	} else {
		guard = cache.NewMemoryGuard()
	}

	// Initialize run report persistence
	var runRepo domainrepo.RunRepository
	if cfg.Database.Enabled {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		runRepo = repository.NewRunRepository(db)
	}

	// Initialize audit retention
	var audit run.AuditStore
	if cfg.Storage.Enabled {
		log.Println("📦 Connecting to MinIO...")
		audit, err = storage.NewMinIOAuditStore(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize audit store: %v", err)
		}
	}

	// Wire the pipeline
	identity := extract.Identity{Name: cfg.Agent.MyName, Email: cfg.Agent.MyEmail}
	engine := extract.NewEngine(provider, identity, cfg.Agent.Timeout, logger)
	dispatcher := dispatch.NewDispatcher(buildSinks(cfg, logger), cfg.Agent.Timeout, logger)
	runner := run.NewRunner(source, engine, dispatcher, guard, audit, runRepo, logger)

	// One-shot mode: run the pipeline once and print the report
	if *meetingID != "" {
		runOnce(runner, *meetingID)
		return
	}

	serve(cfg, runner, logger)
}

// buildSinks assembles the sink registration in configured order
func buildSinks(cfg *config.Config, logger *zap.Logger) []dispatch.Sink {
	sinks := make([]dispatch.Sink, 0, len(cfg.Agent.Sinks))
	for _, name := range cfg.Agent.Sinks {
		if cfg.Agent.UseMock {
			sinks = append(sinks, mock.NewSink(name, logger))
			continue
		}
		switch name {
		case "airtable":
			sinks = append(sinks, airtable.NewSink(&cfg.Airtable))
		case "gmail":
			sinks = append(sinks, gmail.NewSink(&cfg.Gmail))
		case "calendar":
			sinks = append(sinks, gcalendar.NewSink(&cfg.Calendar))
		}
	}
	return sinks
}

// runOnce executes a single run, prints the report as JSON and exits
func runOnce(runner *run.Runner, meetingID string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx, meetingID)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	out, err := json.MarshalIndent(presenter.ToRunReportResponse(report), "", "  ")
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
	fmt.Println(string(out))
}

// serve starts the webhook server with graceful shutdown
func serve(cfg *config.Config, runner *run.Runner, logger *zap.Logger) {
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	runHandler := handler.NewRunHandler(runner, logger)
	webhookHandler := handler.NewFirefliesWebhookHandler(runner, cfg.Server.WebhookSecret, logger)

	router := handler.NewRouter(cfg, runHandler, webhookHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		log.Printf("🚀 Server starting on %s", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
}
