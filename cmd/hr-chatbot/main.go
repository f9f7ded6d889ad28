package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hr-chatbot/internal/api"
	"hr-chatbot/internal/api/handlers"
	"hr-chatbot/internal/repository"
	"hr-chatbot/internal/service"
	"hr-chatbot/pkg/auth"
	"hr-chatbot/pkg/config"
	"hr-chatbot/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting HR chatbot service",
		zap.String("environment", cfg.Environment),
	)

	// Load the knowledge base and build the embedding index before
	// accepting any traffic; a failure here aborts startup.
	ctx := context.Background()
	store, err := repository.LoadKnowledgeStore(cfg.RAG.KnowledgePath, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	embeddingService, err := service.NewEmbeddingService(&cfg.Ollama, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize embedding service", zap.Error(err))
	}

	ragService, err := service.BuildRAGService(ctx, store, embeddingService, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build embedding index", zap.Error(err))
	}

	llmService, err := service.NewLLMService(&cfg.Ollama, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}

	// Directory: company LDAP in production, local users file otherwise.
	var directory service.Directory
	if cfg.LDAP.Enabled {
		directory = repository.NewLDAPDirectory(&cfg.LDAP, appLogger)
	} else {
		directory, err = repository.LoadLocalDirectory(cfg.LDAP.UsersFile, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to load local user directory", zap.Error(err))
		}
	}

	// Initialize JWT manager and services
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.RefreshSecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	authService := service.NewAuthService(directory, jwtManager, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	chatHandler := handlers.NewChatHandler(ragService, llmService, authService, cfg.RAG.SimilarityThreshold, cfg.Environment, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, chatHandler, jwtManager, cfg.CORS.Origins, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
