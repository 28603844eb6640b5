package dto

type IngestDocumentRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FileType string `json:"fileType"`
}

type IngestDocumentResponse struct {
	Success         bool   `json:"success"`
	DocumentID      string `json:"document_id"`
	ChunksProcessed int    `json:"chunks_processed"`
}

type DocumentResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	FileType   string `json:"file_type"`
	ChunkCount int    `json:"chunk_count"`
	CreatedAt  string `json:"created_at"`
}
