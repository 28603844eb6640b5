package service

import (
	"context"
	"fmt"

	"admitrag/internal/models"
	"admitrag/pkg/config"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// LLMService talks to an OpenAI-compatible gateway for both embeddings
// and chat completions. It implements Embedder and Completer.
type LLMService struct {
	client *openai.Client
	config *config.OpenAIConfig
	logger *zap.Logger
}

func NewLLMService(cfg *config.OpenAIConfig, logger *zap.Logger) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &LLMService{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
		logger: logger,
	}, nil
}

// Embed returns the embedding vector for one text span. The vector length
// is fixed by the configured model; similarity search depends on every
// stored chunk using the same model.
func (s *LLMService) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(s.config.EmbeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("embedding response contained no vector")
	}

	return resp.Data[0].Embedding, nil
}

// Complete sends the conversation to the chat model and returns its reply.
// Sampling temperature and the output-token cap are fixed by config; there
// is no streaming or cancellation beyond the context.
func (s *LLMService) Complete(ctx context.Context, turns []models.ConversationTurn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.config.ChatModel,
		Messages:    messages,
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from chat model")
	}

	return resp.Choices[0].Message.Content, nil
}
