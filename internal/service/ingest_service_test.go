package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"admitrag/internal/models"
	"admitrag/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRAGConfig() *config.RAGConfig {
	return &config.RAGConfig{
		ChunkSize:           20,
		ChunkOverlap:        5,
		TopK:                5,
		SimilarityThreshold: 0.78,
		MaxContextSchools:   5,
	}
}

func newTestIngestService(t *testing.T, store *fakeChunkStore, embedder *fakeEmbedder) *IngestService {
	t.Helper()
	svc, err := NewIngestService(store, embedder, testRAGConfig(), zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestIngest_ShortContent(t *testing.T) {
	store := &fakeChunkStore{}
	embedder := &fakeEmbedder{}
	svc := newTestIngestService(t, store, embedder)

	result, err := svc.Ingest(context.Background(), "T", "short text", "text")
	require.NoError(t, err)

	assert.Equal(t, 1, result.ChunksProcessed)
	require.Len(t, store.docs, 1)
	require.Len(t, store.chunks, 1)
	assert.Equal(t, 0, store.chunks[0].ChunkIndex)
	assert.Equal(t, "short text", store.chunks[0].Content)
	assert.Equal(t, store.docs[0].ID, store.chunks[0].DocumentID)

	var meta models.ChunkMetadata
	require.NoError(t, json.Unmarshal([]byte(store.chunks[0].Metadata), &meta))
	assert.Equal(t, "T", meta.DocumentTitle)
	assert.Equal(t, len("short text"), meta.ChunkLength)
	assert.Equal(t, "text", meta.FileType)
}

func TestIngest_ChunkIndexesContiguous(t *testing.T) {
	store := &fakeChunkStore{}
	embedder := &fakeEmbedder{}
	svc := newTestIngestService(t, store, embedder)

	content := strings.Repeat("0123456789", 6) // 60 chars, size 20 overlap 5
	result, err := svc.Ingest(context.Background(), "doc", content, "text")
	require.NoError(t, err)

	require.Greater(t, result.ChunksProcessed, 1)
	for i, chunk := range store.chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
	}
}

func TestIngest_InsertFailureIsIsolated(t *testing.T) {
	store := &fakeChunkStore{failIndexes: map[int]bool{1: true}}
	embedder := &fakeEmbedder{}
	svc := newTestIngestService(t, store, embedder)

	content := strings.Repeat("0123456789", 6)
	result, err := svc.Ingest(context.Background(), "doc", content, "text")
	require.NoError(t, err)

	// chunk 1 is lost but later chunks are still attempted
	var indexes []int
	for _, chunk := range store.chunks {
		indexes = append(indexes, chunk.ChunkIndex)
	}
	assert.NotContains(t, indexes, 1)
	assert.Contains(t, indexes, 0)
	assert.Contains(t, indexes, 2)
	assert.Equal(t, len(store.chunks), result.ChunksProcessed)
}

func TestIngest_EmbeddingFailureIsIsolated(t *testing.T) {
	embedder := &fakeEmbedder{failOn: map[string]bool{}}
	store := &fakeChunkStore{}
	svc := newTestIngestService(t, store, embedder)

	content := strings.Repeat("0123456789", 6)
	chunker, err := NewChunker(20, 5)
	require.NoError(t, err)
	pieces := chunker.Split(content)
	require.Greater(t, len(pieces), 2)
	embedder.failOn[pieces[0]] = true

	result, err := svc.Ingest(context.Background(), "doc", content, "text")
	require.NoError(t, err)

	assert.Equal(t, len(pieces)-1, result.ChunksProcessed)
	for _, chunk := range store.chunks {
		assert.NotEqual(t, 0, chunk.ChunkIndex)
	}
}

func TestIngest_RejectsMissingFields(t *testing.T) {
	store := &fakeChunkStore{}
	embedder := &fakeEmbedder{}
	svc := newTestIngestService(t, store, embedder)

	_, err := svc.Ingest(context.Background(), "", "content", "text")
	assert.Error(t, err)

	_, err = svc.Ingest(context.Background(), "title", "", "text")
	assert.Error(t, err)

	_, err = svc.Ingest(context.Background(), "title", "   ", "text")
	assert.Error(t, err)

	assert.Empty(t, store.docs)
	assert.Empty(t, embedder.embedded)
}

func TestIngest_DocumentInsertFailureAborts(t *testing.T) {
	store := &fakeChunkStore{createDocErr: assert.AnError}
	embedder := &fakeEmbedder{}
	svc := newTestIngestService(t, store, embedder)

	_, err := svc.Ingest(context.Background(), "title", "content", "text")
	assert.Error(t, err)
	assert.Empty(t, embedder.embedded)
}
