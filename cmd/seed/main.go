package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"admitrag/internal/repository"
	"admitrag/internal/service"
	"admitrag/pkg/config"
	"admitrag/pkg/logger"
	"admitrag/pkg/postgres"

	"go.uber.org/zap"
)

// seed ingests the bundled advising documents through the regular
// ingestion pipeline. Already-processed files are skipped via a content
// hash cache so re-running the seeder is cheap.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	docRepo := repository.NewDocumentRepository(db, appLogger)

	llmService, err := service.NewLLMService(&cfg.OpenAI, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM service", zap.Error(err))
	}

	ingestService, err := service.NewIngestService(docRepo, llmService, &cfg.RAG, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize ingest service", zap.Error(err))
	}

	seedDir := filepath.Join("cmd", "seed", "data")
	cacheFile := filepath.Join("cmd", "seed", ".seed_cache.json")

	appLogger.Info("Starting knowledge base seeding", zap.String("dir", seedDir))
	if err := seedFromDir(ctx, seedDir, cacheFile, ingestService, appLogger); err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}
	appLogger.Info("Seeding completed")
}

type processedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	ProcessedAt time.Time `json:"processed_at"`
}

type cacheData struct {
	ProcessedFiles map[string]processedFile `json:"processed_files"`
}

func seedFromDir(ctx context.Context, dir, cacheFile string, ingestService *service.IngestService, appLogger *zap.Logger) error {
	cache := loadCache(cacheFile, appLogger)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read seed directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			appLogger.Warn("Failed to read seed file, skipping", zap.String("file", path), zap.Error(err))
			continue
		}

		hash := fmt.Sprintf("%x", md5.Sum(content))
		if cached, ok := cache.ProcessedFiles[path]; ok && cached.FileHash == hash {
			appLogger.Info("Seed file unchanged, skipping", zap.String("file", path))
			continue
		}

		title := strings.TrimSuffix(entry.Name(), ".txt")
		title = strings.ReplaceAll(title, "_", " ")

		result, err := ingestService.Ingest(ctx, title, string(content), "text")
		if err != nil {
			appLogger.Error("Failed to ingest seed file", zap.String("file", path), zap.Error(err))
			continue
		}

		appLogger.Info("Seed file ingested",
			zap.String("file", path),
			zap.String("document_id", result.DocumentID.String()),
			zap.Int("chunks_processed", result.ChunksProcessed),
		)

		cache.ProcessedFiles[path] = processedFile{
			FilePath:    path,
			FileHash:    hash,
			ProcessedAt: time.Now(),
		}
	}

	return saveCache(cacheFile, cache)
}

func loadCache(path string, appLogger *zap.Logger) *cacheData {
	cache := &cacheData{ProcessedFiles: make(map[string]processedFile)}

	data, err := os.ReadFile(path)
	if err != nil {
		return cache
	}

	if err := json.Unmarshal(data, cache); err != nil {
		appLogger.Warn("Failed to parse seed cache, starting fresh", zap.Error(err))
		return &cacheData{ProcessedFiles: make(map[string]processedFile)}
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]processedFile)
	}

	return cache
}

func saveCache(path string, cache *cacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
