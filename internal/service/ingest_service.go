package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"admitrag/internal/models"
	"admitrag/pkg/config"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

type IngestService struct {
	store    ChunkStore
	embedder Embedder
	chunker  *Chunker
	logger   *zap.Logger
}

type IngestResult struct {
	DocumentID      uuid.UUID
	ChunksProcessed int
}

func NewIngestService(store ChunkStore, embedder Embedder, cfg *config.RAGConfig, logger *zap.Logger) (*IngestService, error) {
	chunker, err := NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	return &IngestService{
		store:    store,
		embedder: embedder,
		chunker:  chunker,
		logger:   logger,
	}, nil
}

// Ingest stores a document and its embedded chunks. Chunks are embedded
// and inserted one at a time, in order; a failure on one chunk (embedding
// or insert) is logged and the loop continues with the next, so a single
// bad chunk never aborts the batch. ChunksProcessed counts chunks that
// were actually stored. Partial ingestion on mid-batch failure is
// accepted; there is no transaction around the chunk inserts.
func (s *IngestService) Ingest(ctx context.Context, title, content, fileType string) (*IngestResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	content = sanitizeUTF8(content)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required")
	}

	now := time.Now()
	doc := &models.Document{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		FileType:  fileType,
		CreatedAt: now,
	}

	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	chunks := s.chunker.Split(content)
	processed := 0

	for i, chunkText := range chunks {
		embedding, err := s.embedder.Embed(ctx, chunkText)
		if err != nil {
			s.logger.Warn("Failed to embed chunk, skipping",
				zap.String("document_id", doc.ID.String()),
				zap.Int("chunk_index", i),
				zap.Error(err),
			)
			continue
		}

		metadata, err := json.Marshal(models.ChunkMetadata{
			DocumentTitle: title,
			ChunkLength:   len(chunkText),
			FileType:      fileType,
		})
		if err != nil {
			s.logger.Warn("Failed to marshal chunk metadata, skipping",
				zap.String("document_id", doc.ID.String()),
				zap.Int("chunk_index", i),
				zap.Error(err),
			)
			continue
		}

		chunk := &models.DocumentChunk{
			ID:         uuid.New(),
			DocumentID: doc.ID,
			Content:    chunkText,
			Embedding:  pgvector.NewVector(embedding),
			ChunkIndex: i,
			Metadata:   string(metadata),
			CreatedAt:  now,
		}
		if err := s.store.CreateChunk(ctx, chunk); err != nil {
			s.logger.Warn("Failed to insert chunk, skipping",
				zap.String("document_id", doc.ID.String()),
				zap.Int("chunk_index", i),
				zap.Error(err),
			)
			continue
		}

		processed++
	}

	s.logger.Info("Document ingested",
		zap.String("document_id", doc.ID.String()),
		zap.String("title", title),
		zap.Int("chunks_total", len(chunks)),
		zap.Int("chunks_processed", processed),
	)

	return &IngestResult{
		DocumentID:      doc.ID,
		ChunksProcessed: processed,
	}, nil
}
