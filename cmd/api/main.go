package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jwebster45206/realm-engine/internal/config"
	"github.com/jwebster45206/realm-engine/internal/handlers"
	"github.com/jwebster45206/realm-engine/internal/logger"
	"github.com/jwebster45206/realm-engine/internal/middleware"
	"github.com/jwebster45206/realm-engine/internal/services"
	"github.com/jwebster45206/realm-engine/internal/storage"
	"github.com/jwebster45206/realm-engine/internal/turn"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Realm Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			log.Error("Gemini API key is required when using gemini provider")
			os.Exit(1)
		}
		llmService, err = services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.ModelName, log)
		if err != nil {
			log.Error("Failed to create Gemini service", "error", err)
			os.Exit(1)
		}
		log.Info("Using Gemini LLM provider")
	case config.ProviderOllama:
		llmService = services.NewOllamaService(cfg.OllamaURL, cfg.ModelName, log)
		log.Info("Using Ollama LLM provider", "url", cfg.OllamaURL)
	case config.ProviderMistral:
		if cfg.MistralAPIKey == "" {
			log.Error("Mistral API key is required when using mistral provider")
			os.Exit(1)
		}
		llmService = services.NewMistralService(cfg.MistralAPIKey, cfg.ModelName, log)
		log.Info("Using Mistral LLM provider")
	case config.ProviderGroq:
		if cfg.GroqAPIKey == "" {
			log.Error("Groq API key is required when using groq provider")
			os.Exit(1)
		}
		llmService = services.NewGroqService(cfg.GroqAPIKey, cfg.ModelName, log)
		log.Info("Using Groq LLM provider")
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider,
			"supported", []string{config.ProviderGemini, config.ProviderOllama, config.ProviderMistral, config.ProviderGroq})
		os.Exit(1)
	}

	if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	store := storage.NewRedisStorage(cfg.RedisURL, log)
	if err := store.WaitForConnection(ctx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	narrator := services.NewNarrator(llmService, log)
	processor := turn.NewProcessor(store, narrator, log)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, cfg.LLMProvider, log)
	mux.Handle("/health", healthHandler)

	gameStateHandler := handlers.NewGameStateHandler(store, log)
	mux.Handle("/v1/gamestate", gameStateHandler)
	mux.Handle("/v1/gamestate/", gameStateHandler)

	turnHandler := handlers.NewTurnHandler(processor, log)
	mux.Handle("/v1/turn", turnHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      middleware.Logger(log, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
