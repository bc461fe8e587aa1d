package agentports

import "context"

// Message is a single chat message exchanged with the generator.
type Message struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// Generator is the abstraction for the generative text collaborator.
// It turns a system prompt plus windowed history into the next reply.
type Generator interface {
	Generate(ctx context.Context, system string, history []Message, userMessage string) (string, error)
}
