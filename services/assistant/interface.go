// Package assistant wraps the language-model oracle behind a small interface
// so the dialogue orchestrator can be exercised against a scripted fake.
package assistant

import (
	"context"

	"imovelmatch/models"
)

// Reply is one oracle exchange: free text, tool calls, or both.
type Reply struct {
	Text  string
	Calls []models.ToolCall
}

// Conversation is a live exchange with the oracle. Implementations carry the
// turn history internally; callers feed tool results back through
// SendToolResult until the oracle produces a final text reply.
type Conversation interface {
	SendText(ctx context.Context, text string) (*Reply, error)
	SendToolResult(ctx context.Context, tool string, payload map[string]any) (*Reply, error)
}

// Client starts oracle conversations seeded with prior session history.
type Client interface {
	Start(history []models.Message, userName string) Conversation
}
