package main

import (
	"fmt"
	"os"
	"time"

	"github.com/torkelwestby/christmas-rebus/internal/analyze"
	"github.com/torkelwestby/christmas-rebus/internal/auth"
	httpserver "github.com/torkelwestby/christmas-rebus/internal/http"
	"github.com/torkelwestby/christmas-rebus/internal/http/handlers"
	"github.com/torkelwestby/christmas-rebus/internal/ideas"
	"github.com/torkelwestby/christmas-rebus/internal/platform/airtable"
	"github.com/torkelwestby/christmas-rebus/internal/platform/cloudinary"
	"github.com/torkelwestby/christmas-rebus/internal/platform/envutil"
	"github.com/torkelwestby/christmas-rebus/internal/platform/logger"
	"github.com/torkelwestby/christmas-rebus/internal/platform/openai"
	"github.com/torkelwestby/christmas-rebus/internal/progress"
	"github.com/torkelwestby/christmas-rebus/internal/ratelimit"
	"github.com/torkelwestby/christmas-rebus/internal/rebus"
)

func main() {
	// Logger
	logMode := envutil.Str("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Platform clients
	log.Info("Setting up platform clients...")
	airtableClient, err := airtable.NewClient(log)
	if err != nil {
		log.Error("Could not init record store client", "error", err)
		os.Exit(1)
	}
	openaiClient, err := openai.NewClient(log)
	if err != nil {
		log.Error("Could not init OpenAI client", "error", err)
		os.Exit(1)
	}
	mediaClient, err := cloudinary.NewClient(log)
	if err != nil {
		// Without the media host, inline uploads go to the store as data URLs.
		log.Warn("Media host not configured", "error", err)
		mediaClient = nil
	}

	// Services
	log.Info("Setting up services...")
	ideaTable := envutil.Str("AIRTABLE_TABLE_ID", "")
	progressTable := envutil.Str("AIRTABLE_PROGRESS_TABLE_ID", ideaTable)
	if ideaTable == "" {
		log.Error("Missing AIRTABLE_TABLE_ID")
		os.Exit(1)
	}

	composer := rebus.NewComposer(log, openaiClient)
	progressStore := progress.NewStore(log, airtableClient, progressTable)
	ideaService := ideas.NewService(log, airtableClient, mediaClient, ideaTable)
	analyzeService := analyze.NewService(log, openaiClient)
	authService, err := auth.NewService(log)
	if err != nil {
		log.Error("Could not init auth service", "error", err)
		os.Exit(1)
	}

	// Rate limiters: 5/10s for idea submissions, hourly budget for AI analysis.
	submitLimiter := ratelimit.New(
		envutil.Int("SUBMIT_RATE_LIMIT", 5),
		10*time.Second,
		time.Minute,
	)
	defer submitLimiter.Close()
	analyzeLimiter := ratelimit.New(
		envutil.Int("AI_MAX_REQ_PER_HOUR", 10),
		time.Hour,
		10*time.Minute,
	)
	defer analyzeLimiter.Close()

	// HTTP
	server := httpserver.NewServer(httpserver.RouterConfig{
		Log:             log,
		RebusHandler:    handlers.NewRebusHandler(log, composer),
		ProgressHandler: handlers.NewProgressHandler(log, progressStore),
		IdeaHandler:     handlers.NewIdeaHandler(log, ideaService),
		AnalyzeHandler:  handlers.NewAnalyzeHandler(log, analyzeService, analyzeLimiter),
		AuthHandler:     handlers.NewAuthHandler(log, authService),
		HealthHandler:   handlers.NewHealthHandler(),
		SubmitLimiter:   submitLimiter,
	})

	address := ":" + envutil.Str("PORT", "8080")
	log.Info("Starting server", "address", address)
	if err := server.Run(address); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
