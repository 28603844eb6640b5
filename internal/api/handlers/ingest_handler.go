package handlers

import (
	"context"
	"strings"
	"time"

	"admitrag/internal/dto"
	"admitrag/internal/repository"
	"admitrag/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxListLimit = 100

// DocumentLister is the read side of the document store used for listing.
type DocumentLister interface {
	ListDocuments(ctx context.Context, limit, offset int) ([]*repository.DocumentSummary, error)
}

type IngestHandler struct {
	ingestService *service.IngestService
	docs          DocumentLister
	logger        *zap.Logger
}

func NewIngestHandler(ingestService *service.IngestService, docs DocumentLister, logger *zap.Logger) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
		docs:          docs,
		logger:        logger,
	}
}

// IngestDocument godoc
// @Summary Ingest an advising document
// @Description Split a document into overlapping chunks, embed each chunk and store them for retrieval
// @Tags documents
// @Accept json
// @Produce json
// @Param request body dto.IngestDocumentRequest true "Document to ingest"
// @Success 200 {object} dto.IngestDocumentResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/documents/ingest [post]
func (h *IngestHandler) IngestDocument(c *fiber.Ctx) error {
	var req dto.IngestDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and content are required",
		})
	}

	fileType := req.FileType
	if fileType == "" {
		fileType = "text"
	}

	result, err := h.ingestService.Ingest(c.Context(), req.Title, req.Content, fileType)
	if err != nil {
		h.logger.Error("Failed to ingest document", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to ingest document",
		})
	}

	return c.JSON(dto.IngestDocumentResponse{
		Success:         true,
		DocumentID:      result.DocumentID.String(),
		ChunksProcessed: result.ChunksProcessed,
	})
}

// ListDocuments godoc
// @Summary List ingested documents
// @Description Get a paginated list of ingested documents with their chunk counts
// @Tags documents
// @Produce json
// @Param limit query int false "Limit" default(10)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.DocumentResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/documents [get]
func (h *IngestHandler) ListDocuments(c *fiber.Ctx) error {
	// negative values would wrap to huge uint64 LIMIT/OFFSET in the query
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	summaries, err := h.docs.ListDocuments(c.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list documents", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list documents",
		})
	}

	docs := make([]dto.DocumentResponse, 0, len(summaries))
	for _, s := range summaries {
		docs = append(docs, dto.DocumentResponse{
			ID:         s.Document.ID.String(),
			Title:      s.Document.Title,
			FileType:   s.Document.FileType,
			ChunkCount: s.ChunkCount,
			CreatedAt:  s.Document.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(docs)
}
