package handlers

import (
	"context"
	"time"

	"admitrag/internal/models"
	"admitrag/internal/service"
	"admitrag/pkg/auth"
	"admitrag/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeCompleter struct {
	reply string
	calls int
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, _ []models.ConversationTurn) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeChunkStore struct {
	docs          []*models.Document
	chunks        []*models.DocumentChunk
	searchResults []*models.ScoredChunk
	createDocErr  error
}

func (f *fakeChunkStore) CreateDocument(_ context.Context, doc *models.Document) error {
	if f.createDocErr != nil {
		return f.createDocErr
	}
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeChunkStore) CreateChunk(_ context.Context, chunk *models.DocumentChunk) error {
	f.chunks = append(f.chunks, chunk)
	return nil
}

func (f *fakeChunkStore) SearchSimilar(_ context.Context, _ []float32, _ float64, _ int) ([]*models.ScoredChunk, error) {
	return f.searchResults, nil
}

type fakeProfileStore struct{}

func (f *fakeProfileStore) GetProfile(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	return nil, pgx.ErrNoRows
}

func (f *fakeProfileStore) ListSchools(_ context.Context, _ uuid.UUID, _ int) ([]*models.SchoolEntry, error) {
	return nil, nil
}

func testRAGConfig() *config.RAGConfig {
	return &config.RAGConfig{
		ChunkSize:           1000,
		ChunkOverlap:        200,
		TopK:                5,
		SimilarityThreshold: 0.78,
		MaxContextSchools:   5,
	}
}

func newChatServiceForTest(store *fakeChunkStore, embedder *fakeEmbedder, completer *fakeCompleter) *service.ChatService {
	logger := zap.NewNop()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	cfg := testRAGConfig()
	retrieval := service.NewRetrievalService(store, embedder, cfg, logger)
	enricher := service.NewContextService(jwtManager, &fakeProfileStore{}, cfg.MaxContextSchools, logger)
	return service.NewChatService(retrieval, enricher, completer, logger)
}
