package service

import (
	"context"

	"admitrag/internal/models"

	"github.com/google/uuid"
)

// Embedder converts text into a fixed-length dense vector. One outbound
// call per invocation; no batching, caching, or retries.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer forwards a conversation to a hosted chat-completion model
type Completer interface {
	Complete(ctx context.Context, turns []models.ConversationTurn) (string, error)
}

// ChunkStore persists documents and chunks and answers similarity queries
type ChunkStore interface {
	CreateDocument(ctx context.Context, doc *models.Document) error
	CreateChunk(ctx context.Context, chunk *models.DocumentChunk) error
	SearchSimilar(ctx context.Context, embedding []float32, minSimilarity float64, limit int) ([]*models.ScoredChunk, error)
}

// ProfileStore reads the per-user data used for prompt personalization
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	ListSchools(ctx context.Context, userID uuid.UUID, limit int) ([]*models.SchoolEntry, error)
}
