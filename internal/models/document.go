package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Document is an ingested advising document. Immutable after creation.
type Document struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	FileType  string    `db:"file_type"`
	CreatedAt time.Time `db:"created_at"`
}

// ChunkMetadata is stored as JSON alongside each chunk
type ChunkMetadata struct {
	DocumentTitle string `json:"document_title"`
	ChunkLength   int    `json:"chunk_length"`
	FileType      string `json:"file_type"`
}

// DocumentChunk is the unit of embedding and retrieval. ChunkIndex values
// for one document form a contiguous 0-based sequence in emission order.
type DocumentChunk struct {
	ID         uuid.UUID       `db:"id"`
	DocumentID uuid.UUID       `db:"document_id"`
	Content    string          `db:"content"`
	Embedding  pgvector.Vector `db:"embedding"`
	ChunkIndex int             `db:"chunk_index"`
	Metadata   string          `db:"metadata"`
	CreatedAt  time.Time       `db:"created_at"`
}

// ScoredChunk is a retrieval hit with its cosine similarity to the query
type ScoredChunk struct {
	Chunk      *DocumentChunk
	Similarity float64
}
