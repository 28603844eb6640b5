package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"admitrag/internal/api"
	"admitrag/internal/api/handlers"
	"admitrag/internal/repository"
	"admitrag/internal/service"
	"admitrag/pkg/auth"
	"admitrag/pkg/config"
	"admitrag/pkg/logger"
	"admitrag/pkg/postgres"

	"go.uber.org/zap"
)

// @title AdmitRAG API
// @version 1.0
// @description RAG backend for a college-application assistant: document ingestion and retrieval-augmented chat

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting AdmitRAG service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	docRepo := repository.NewDocumentRepository(db, appLogger)
	profileRepo := repository.NewProfileRepository(db, appLogger)

	// JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)

	llmService, err := service.NewLLMService(&cfg.OpenAI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}

	ingestService, err := service.NewIngestService(docRepo, llmService, &cfg.RAG, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ingest service", zap.Error(err))
	}

	retrievalService := service.NewRetrievalService(docRepo, llmService, &cfg.RAG, appLogger)
	contextService := service.NewContextService(jwtManager, profileRepo, cfg.RAG.MaxContextSchools, appLogger)
	chatService := service.NewChatService(retrievalService, contextService, llmService, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	ingestHandler := handlers.NewIngestHandler(ingestService, docRepo, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, appLogger)

	app := api.SetupRouter(authHandler, ingestHandler, chatHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
