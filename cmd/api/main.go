// ShiftPulse API
//
// REST API computing daily Body/Mental vitals for shift workers.
//
//	@title			ShiftPulse API
//	@version		1.0
//	@description	Log one row per day (shift, sleep, stress, caffeine, mood) and read back battery-style recovery scores.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management and cycle settings
//
//	@tag.name			day-logs
//	@tag.description	Daily log endpoints (one row per user per day)
//
//	@tag.name			vitals
//	@tag.description	Computed vitals, summaries, and recovery advice
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jmarken/shiftpulse/internal/api"
	"github.com/jmarken/shiftpulse/internal/api/handler"
	"github.com/jmarken/shiftpulse/internal/config"
	"github.com/jmarken/shiftpulse/internal/domain"
	"github.com/jmarken/shiftpulse/internal/langfuse"
	"github.com/jmarken/shiftpulse/internal/llm"
	"github.com/jmarken/shiftpulse/internal/repository"
	"github.com/jmarken/shiftpulse/internal/seed"
	"github.com/jmarken/shiftpulse/internal/service"
	"github.com/jmarken/shiftpulse/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()

	// Initialize tracing (no-op when Langfuse is not configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "shiftpulse-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Tracer shutdown failed: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.User{}, &domain.DayLog{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	dayLogRepo := repository.NewDayLogRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	dayLogService := service.NewDayLogService(dayLogRepo, userRepo)
	vitalsService := service.NewVitalsService(dayLogRepo, userRepo)

	// Langfuse client for feedback scores
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	// Advice system prompt can be managed in Langfuse; falls back to the built-in one
	systemPrompt := ""
	if prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:    cfg.LangfuseBaseURL,
		PublicKey:  cfg.LangfusePublicKey,
		SecretKey:  cfg.LangfuseSecretKey,
		PromptName: "shiftpulse-advice-system",
	}); err == nil {
		systemPrompt = prompt
	}

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIAdviceModel, systemPrompt)
	if openaiClient == nil {
		log.Println("Warning: OpenAI API key not configured, advice endpoint will be unavailable")
	}

	adviceService := service.NewAdviceService(vitalsService, openaiClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	dayLogHandler := handler.NewDayLogHandler(dayLogService)
	vitalsHandler := handler.NewVitalsHandler(vitalsService, adviceService, langfuseClient)

	// Setup router
	router := api.NewRouter(userHandler, dayLogHandler, vitalsHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
