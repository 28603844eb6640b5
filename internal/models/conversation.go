package models

// Conversation roles, mirrored onto the chat-completion API
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message of a chat exchange. Turns are transient;
// the caller persists and replays history across requests.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
