package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"admitrag/internal/dto"
	"admitrag/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newChatApp(store *fakeChunkStore, embedder *fakeEmbedder, completer *fakeCompleter) *fiber.App {
	chatService := newChatServiceForTest(store, embedder, completer)
	handler := NewChatHandler(chatService, zap.NewNop())

	app := fiber.New()
	app.Post("/api/v1/chat", handler.Chat)
	return app
}

func TestChatEndpoint_MissingMessage(t *testing.T) {
	embedder := &fakeEmbedder{}
	completer := &fakeCompleter{reply: "hi"}
	app := newChatApp(&fakeChunkStore{}, embedder, completer)

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])

	// no upstream calls were made
	assert.Zero(t, embedder.calls)
	assert.Zero(t, completer.calls)
}

func TestChatEndpoint_Success(t *testing.T) {
	store := &fakeChunkStore{
		searchResults: []*models.ScoredChunk{
			{Chunk: &models.DocumentChunk{ID: uuid.New(), Content: "deadline info"}, Similarity: 0.9},
		},
	}
	app := newChatApp(store, &fakeEmbedder{}, &fakeCompleter{reply: "Deadlines are Nov 1."})

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"message":"when are deadlines?"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Deadlines are Nov 1.", body.Response)
	assert.True(t, body.ContextUsed)
	assert.Equal(t, 1, body.SourcesCount)
}

func TestChatEndpoint_NoContext(t *testing.T) {
	app := newChatApp(&fakeChunkStore{}, &fakeEmbedder{}, &fakeCompleter{reply: "General advice."})

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.ContextUsed)
	assert.Equal(t, 0, body.SourcesCount)
}

func TestChatEndpoint_ModelFailure(t *testing.T) {
	app := newChatApp(&fakeChunkStore{}, &fakeEmbedder{}, &fakeCompleter{err: assert.AnError})

	req := httptest.NewRequest("POST", "/api/v1/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	// internal details are not echoed to the client
	assert.Equal(t, "Failed to generate a response", body["error"])
}
