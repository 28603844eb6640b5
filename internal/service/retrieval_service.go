package service

import (
	"context"

	"admitrag/internal/models"
	"admitrag/pkg/config"

	"go.uber.org/zap"
)

// RetrievalService answers "which stored chunks are relevant to this
// query". Retrieval is best-effort: any embedding or store failure
// degrades to an empty result instead of failing the chat request.
type RetrievalService struct {
	store     ChunkStore
	embedder  Embedder
	topK      int
	threshold float64
	logger    *zap.Logger
}

func NewRetrievalService(store ChunkStore, embedder Embedder, cfg *config.RAGConfig, logger *zap.Logger) *RetrievalService {
	return &RetrievalService{
		store:     store,
		embedder:  embedder,
		topK:      cfg.TopK,
		threshold: cfg.SimilarityThreshold,
		logger:    logger,
	}
}

// Search returns the top-K chunks above the similarity threshold, ordered
// by descending similarity. An empty result is a valid outcome, not an
// error.
func (s *RetrievalService) Search(ctx context.Context, query string) []*models.ScoredChunk {
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Warn("Failed to embed query, proceeding without context", zap.Error(err))
		return nil
	}

	results, err := s.store.SearchSimilar(ctx, embedding, s.threshold, s.topK)
	if err != nil {
		s.logger.Warn("Similarity search failed, proceeding without context", zap.Error(err))
		return nil
	}

	s.logger.Debug("Retrieval completed",
		zap.Int("results", len(results)),
		zap.Float64("threshold", s.threshold),
	)

	return results
}
