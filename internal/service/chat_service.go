package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"admitrag/internal/models"

	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("message is required")

const advisorPersona = `You are an experienced college admissions advisor for a student application tracking platform. You help students build balanced school lists, plan and track application essays, understand deadlines and application types (Early Decision, Early Action, Regular Decision), and navigate the admissions process. Be specific and practical. When reference material is provided below, ground your answer in it; when it does not cover the question, say so and give general admissions guidance instead.`

// ChatService runs one chat request end to end: authenticate (optional),
// retrieve, compose the prompt, call the model, respond. A single pass
// with no retries; auth and retrieval are best-effort and never block an
// answer.
type ChatService struct {
	retrieval *RetrievalService
	enricher  *ContextService
	completer Completer
	logger    *zap.Logger
}

type ChatInput struct {
	Message     string
	History     []models.ConversationTurn
	BearerToken string
}

type ChatResult struct {
	Response     string
	ContextUsed  bool
	SourcesCount int
}

func NewChatService(retrieval *RetrievalService, enricher *ContextService, completer Completer, logger *zap.Logger) *ChatService {
	return &ChatService{
		retrieval: retrieval,
		enricher:  enricher,
		completer: completer,
		logger:    logger,
	}
}

func (s *ChatService) Chat(ctx context.Context, in ChatInput) (*ChatResult, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	userCtx, err := s.enricher.Lookup(ctx, in.BearerToken)
	if err != nil {
		// Personalization is optional; answer without it
		s.logger.Warn("User context lookup failed, proceeding without personalization", zap.Error(err))
		userCtx = nil
	}

	chunks := s.retrieval.Search(ctx, message)

	turns := make([]models.ConversationTurn, 0, len(in.History)+2)
	turns = append(turns, models.ConversationTurn{
		Role:    models.RoleSystem,
		Content: buildSystemPrompt(chunks, userCtx),
	})
	// History is caller-supplied and replayed verbatim
	turns = append(turns, in.History...)
	turns = append(turns, models.ConversationTurn{
		Role:    models.RoleUser,
		Content: message,
	})

	response, err := s.completer.Complete(ctx, turns)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	return &ChatResult{
		Response:     response,
		ContextUsed:  len(chunks) > 0,
		SourcesCount: len(chunks),
	}, nil
}

// buildSystemPrompt combines the fixed persona, retrieved chunk contents
// in retrieval order, and the student's profile and school list when
// present.
func buildSystemPrompt(chunks []*models.ScoredChunk, userCtx *models.UserContext) string {
	var builder strings.Builder
	builder.WriteString(advisorPersona)

	if len(chunks) > 0 {
		builder.WriteString("\n\nReference material:\n\n")
		for i, sc := range chunks {
			builder.WriteString(sc.Chunk.Content)
			if i < len(chunks)-1 {
				builder.WriteString("\n\n")
			}
		}
	}

	if userCtx != nil && userCtx.Profile != nil {
		p := userCtx.Profile
		builder.WriteString("\n\nStudent profile:\n")
		builder.WriteString(fmt.Sprintf("- Name: %s\n", p.FullName))
		if p.GradeLevel != "" {
			builder.WriteString(fmt.Sprintf("- Grade level: %s\n", p.GradeLevel))
		}
		if p.GPA > 0 {
			builder.WriteString(fmt.Sprintf("- GPA: %.2f\n", p.GPA))
		}
		if p.IntendedMajor != "" {
			builder.WriteString(fmt.Sprintf("- Intended major: %s\n", p.IntendedMajor))
		}
		if p.GraduationYear > 0 {
			builder.WriteString(fmt.Sprintf("- Graduation year: %d\n", p.GraduationYear))
		}
	}

	if userCtx != nil && len(userCtx.Schools) > 0 {
		builder.WriteString("\n\nSchool list:\n")
		for _, school := range userCtx.Schools {
			builder.WriteString(fmt.Sprintf("- %s: %s (%s)\n", school.Name, school.Status, school.ApplicationType))
		}
	}

	return builder.String()
}
