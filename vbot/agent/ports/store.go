package agentports

import "context"

// Conversation is the persisted state for one (tenant, phone) pair.
type Conversation struct {
	Tenant   string       `json:"tenant"`
	Phone    string       `json:"phone"`
	Messages []Message    `json:"messages"`
	Cart     []CartItem   `json:"cart"`
	Customer CustomerData `json:"customerData"`
}

// ConversationStore persists conversations. LoadConversation returns
// (nil, nil) when no conversation exists yet for the pair.
type ConversationStore interface {
	LoadConversation(ctx context.Context, tenant, phone string) (*Conversation, error)
	SaveConversation(ctx context.Context, tenant, phone string, messages []Message, cart []CartItem, customer CustomerData) error
}
