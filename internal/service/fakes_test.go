package service

import (
	"context"
	"errors"

	"admitrag/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeEmbedder struct {
	vector   []float32
	err      error
	failOn   map[string]bool // texts that should fail to embed
	embedded []string
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.failOn[text] {
		return nil, errors.New("embedding unavailable")
	}
	f.embedded = append(f.embedded, text)
	if f.vector != nil {
		return f.vector, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeCompleter struct {
	reply string
	err   error
	turns []models.ConversationTurn
}

func (f *fakeCompleter) Complete(_ context.Context, turns []models.ConversationTurn) (string, error) {
	f.turns = turns
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeChunkStore struct {
	docs          []*models.Document
	chunks        []*models.DocumentChunk
	failIndexes   map[int]bool // chunk indexes whose insert should fail
	createDocErr  error
	searchResults []*models.ScoredChunk
	searchErr     error
}

func (f *fakeChunkStore) CreateDocument(_ context.Context, doc *models.Document) error {
	if f.createDocErr != nil {
		return f.createDocErr
	}
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeChunkStore) CreateChunk(_ context.Context, chunk *models.DocumentChunk) error {
	if f.failIndexes[chunk.ChunkIndex] {
		return errors.New("insert failed")
	}
	f.chunks = append(f.chunks, chunk)
	return nil
}

func (f *fakeChunkStore) SearchSimilar(_ context.Context, _ []float32, _ float64, _ int) ([]*models.ScoredChunk, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

type fakeProfileStore struct {
	profile    *models.Profile
	profileErr error
	schools    []*models.SchoolEntry
	schoolsErr error
}

func (f *fakeProfileStore) GetProfile(_ context.Context, _ uuid.UUID) (*models.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if f.profile == nil {
		return nil, pgx.ErrNoRows
	}
	return f.profile, nil
}

func (f *fakeProfileStore) ListSchools(_ context.Context, _ uuid.UUID, limit int) ([]*models.SchoolEntry, error) {
	if f.schoolsErr != nil {
		return nil, f.schoolsErr
	}
	if len(f.schools) > limit {
		return f.schools[:limit], nil
	}
	return f.schools, nil
}

func scoredChunk(content string, similarity float64) *models.ScoredChunk {
	return &models.ScoredChunk{
		Chunk: &models.DocumentChunk{
			ID:      uuid.New(),
			Content: content,
		},
		Similarity: similarity,
	}
}
