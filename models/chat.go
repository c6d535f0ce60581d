package models

// Message roles mirror the roles the oracle understands.
const (
	RoleUser      = "user"
	RoleAssistant = "model"
)

// Message is one role-tagged turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the ephemeral per-user conversation state. It is append-only
// within its lifetime and evicted by TTL, never durably persisted.
type Session struct {
	ID       string    `json:"id"`
	UserName string    `json:"user_name"`
	Messages []Message `json:"messages"`

	// Last tables rendered to this session, kept only to avoid re-emitting
	// an identical table on a later turn.
	LastProperties string `json:"last_properties,omitempty"`
	LastSlots      string `json:"last_slots,omitempty"`
}

// ToolCall is a structured request from the oracle naming one of the fixed
// operations with raw keyword arguments.
type ToolCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// AgentOutput is the structured result of one resolved turn.
type AgentOutput struct {
	Response   string `json:"response"`
	Properties string `json:"properties,omitempty"`
	Slots      string `json:"slots,omitempty"`
}

// ChatRequest is the HTTP chat surface input.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	UserName  string `json:"user_name"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is the HTTP chat surface output.
type ChatResponse struct {
	SessionID  string `json:"session_id"`
	Response   string `json:"response"`
	Properties string `json:"properties,omitempty"`
	Slots      string `json:"slots,omitempty"`
}
