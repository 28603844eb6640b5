package repository

import (
	"context"

	"admitrag/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

type DocumentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDocumentRepository(db *pgxpool.Pool, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DocumentRepository) CreateDocument(ctx context.Context, doc *models.Document) error {
	query := squirrel.Insert("documents").
		Columns("id", "title", "content", "file_type", "created_at").
		Values(doc.ID, doc.Title, doc.Content, doc.FileType, doc.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *DocumentRepository) CreateChunk(ctx context.Context, chunk *models.DocumentChunk) error {
	query := squirrel.Insert("document_chunks").
		Columns("id", "document_id", "content", "embedding", "chunk_index", "metadata", "created_at").
		Values(chunk.ID, chunk.DocumentID, chunk.Content, chunk.Embedding, chunk.ChunkIndex, chunk.Metadata, chunk.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// SearchSimilar returns the chunks most similar to the given embedding,
// ordered by descending cosine similarity. Chunks below minSimilarity are
// excluded, so an empty result is a normal outcome.
func (r *DocumentRepository) SearchSimilar(ctx context.Context, embedding []float32, minSimilarity float64, limit int) ([]*models.ScoredChunk, error) {
	vec := pgvector.NewVector(embedding)

	query := squirrel.Select("id", "document_id", "content", "chunk_index", "metadata", "created_at").
		Column(squirrel.Expr("1 - (embedding <=> ?) AS similarity", vec)).
		From("document_chunks").
		Where(squirrel.Expr("1 - (embedding <=> ?) >= ?", vec, minSimilarity)).
		OrderBy("similarity DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.ScoredChunk
	for rows.Next() {
		var chunk models.DocumentChunk
		var similarity float64

		if err := rows.Scan(
			&chunk.ID, &chunk.DocumentID, &chunk.Content, &chunk.ChunkIndex, &chunk.Metadata, &chunk.CreatedAt, &similarity,
		); err != nil {
			return nil, err
		}

		results = append(results, &models.ScoredChunk{Chunk: &chunk, Similarity: similarity})
	}

	return results, rows.Err()
}

func (r *DocumentRepository) GetDocumentByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := squirrel.Select("id", "title", "content", "file_type", "created_at").
		From("documents").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var doc models.Document
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&doc.ID, &doc.Title, &doc.Content, &doc.FileType, &doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// DocumentSummary is a listing row: document fields plus its chunk count
type DocumentSummary struct {
	Document   models.Document
	ChunkCount int
}

func (r *DocumentRepository) ListDocuments(ctx context.Context, limit, offset int) ([]*DocumentSummary, error) {
	query := squirrel.Select("d.id", "d.title", "d.file_type", "d.created_at", "COUNT(c.id)").
		From("documents d").
		LeftJoin("document_chunks c ON c.document_id = d.id").
		GroupBy("d.id", "d.title", "d.file_type", "d.created_at").
		OrderBy("d.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*DocumentSummary
	for rows.Next() {
		var s DocumentSummary
		if err := rows.Scan(&s.Document.ID, &s.Document.Title, &s.Document.FileType, &s.Document.CreatedAt, &s.ChunkCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}
