package handlers

import (
	"errors"
	"strings"

	"admitrag/internal/dto"
	"admitrag/internal/models"
	"admitrag/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Ask the admissions assistant
// @Description Answer a question using retrieved document context and, when a bearer token is supplied, the student's profile and school list
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Chat request"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	history := make([]models.ConversationTurn, 0, len(req.ConversationHistory))
	for _, turn := range req.ConversationHistory {
		history = append(history, models.ConversationTurn{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	// Auth is optional here; the chat degrades to an anonymous answer
	// when the token is missing or invalid
	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")

	result, err := h.chatService.Chat(c.Context(), service.ChatInput{
		Message:     req.Message,
		History:     history,
		BearerToken: token,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required",
			})
		}
		h.logger.Error("Chat request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate a response",
		})
	}

	return c.JSON(dto.ChatResponse{
		Response:     result.Response,
		ContextUsed:  result.ContextUsed,
		SourcesCount: result.SourcesCount,
	})
}
