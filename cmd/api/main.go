package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"heroic/ats-platform/internal/config"
	"heroic/ats-platform/internal/repositories"
	"heroic/ats-platform/internal/server"
	"heroic/ats-platform/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize conversation store
	var conversations services.ConversationStore
	switch cfg.Conversation.Store {
	case config.StorePostgres:
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		conversations = services.NewPersistentConversationStore(
			repositories.NewConversationRepository(db),
			cfg.Conversation.MaxTurns,
		)
	default:
		conversations = services.NewMemoryConversationStore(cfg.Conversation.MaxTurns)
	}
	log.Printf("✅ Conversation store initialized (%s)\n", cfg.Conversation.Store)

	// Initialize prompt
	var (
		promptBuilder *services.PromptBuilder
		err           error
	)
	if cfg.Prompt.TemplatePath != "" {
		promptBuilder, err = services.NewPromptBuilderFromFile(cfg.Prompt.TemplatePath)
	} else {
		promptBuilder, err = services.NewPromptBuilder(cfg.Prompt.Version)
	}
	if err != nil {
		log.Fatalf("❌ Failed to load prompt template: %v", err)
	}
	log.Printf("✅ Prompt template %s loaded\n", promptBuilder.Version())

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(context.Background(), services.GeminiOptions{
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		Temperature:     cfg.Gemini.Temperature,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
		Timeout:         cfg.LLM.Timeout,
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Printf("✅ Gemini AI initialized successfully (%s)\n", cfg.Gemini.Model)

	analyzer := services.NewAnalyzerService(
		services.NewPDFParserService(),
		geminiService,
		promptBuilder,
		conversations,
		cfg.LLM.MaxAttempts,
	)
	log.Println("✅ Analyzer service initialized")

	app := server.New(cfg, analyzer)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
