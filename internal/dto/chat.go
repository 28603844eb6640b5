package dto

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string     `json:"message"`
	ConversationHistory []ChatTurn `json:"conversationHistory"`
}

type ChatResponse struct {
	Response     string `json:"response"`
	ContextUsed  bool   `json:"context_used"`
	SourcesCount int    `json:"sources_count"`
}
