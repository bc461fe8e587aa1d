package adapters

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

//go:embed migrations/*.sql
var migrations embed.FS

// LibSQLStore persists conversations and orders in libsql. It
// implements both ConversationStore and OrderService.
type LibSQLStore struct {
	db *sql.DB
}

// NewLibSQLStore runs the schema migrations and returns the store.
func NewLibSQLStore(db *sql.DB) (*LibSQLStore, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to run goose migrations: %w", err)
	}
	return &LibSQLStore{db: db}, nil
}

// LoadConversation returns (nil, nil) when the pair has no conversation.
func (s *LibSQLStore) LoadConversation(ctx context.Context, tenant, phone string) (*ports.Conversation, error) {
	var messagesJSON, cartJSON, customerJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT messages, cart, customer FROM conversations WHERE tenant = ? AND phone = ?`,
		tenant, phone,
	).Scan(&messagesJSON, &cartJSON, &customerJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation: %w", err)
	}

	conv := &ports.Conversation{Tenant: tenant, Phone: phone}
	if err := json.Unmarshal([]byte(messagesJSON), &conv.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	if err := json.Unmarshal([]byte(cartJSON), &conv.Cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	if err := json.Unmarshal([]byte(customerJSON), &conv.Customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer data: %w", err)
	}
	return conv, nil
}

// SaveConversation upserts the whole conversation state atomically.
func (s *LibSQLStore) SaveConversation(ctx context.Context, tenant, phone string, messages []ports.Message, cart []ports.CartItem, customer ports.CustomerData) error {
	if messages == nil {
		messages = []ports.Message{}
	}
	if cart == nil {
		cart = []ports.CartItem{}
	}

	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	customerJSON, err := json.Marshal(customer)
	if err != nil {
		return fmt.Errorf("failed to marshal customer data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (tenant, phone, messages, cart, customer, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (tenant, phone) DO UPDATE SET
			messages = excluded.messages,
			cart = excluded.cart,
			customer = excluded.customer,
			updated_at = excluded.updated_at
	`, tenant, phone, string(messagesJSON), string(cartJSON), string(customerJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// CreateOrder allocates the tenant's next order number and inserts the
// order in one transaction.
func (s *LibSQLStore) CreateOrder(ctx context.Context, tenant string, customer ports.CustomerData, cart []ports.CartItem, deliveryFee float64) (ports.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ports.Order{}, fmt.Errorf("failed to begin order transaction: %w", err)
	}
	defer tx.Rollback()

	var orderNumber int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO order_counters (tenant, next_number) VALUES (?, 1)
		ON CONFLICT (tenant) DO UPDATE SET next_number = next_number + 1
		RETURNING next_number
	`, tenant).Scan(&orderNumber)
	if err != nil {
		return ports.Order{}, fmt.Errorf("failed to allocate order number: %w", err)
	}

	var subtotal float64
	for _, item := range cart {
		subtotal += item.Price * float64(item.Quantity)
	}
	total := subtotal + deliveryFee

	customerJSON, err := json.Marshal(customer)
	if err != nil {
		return ports.Order{}, fmt.Errorf("failed to marshal customer data: %w", err)
	}
	itemsJSON, err := json.Marshal(cart)
	if err != nil {
		return ports.Order{}, fmt.Errorf("failed to marshal cart: %w", err)
	}

	order := ports.Order{OrderNumber: orderNumber, Total: total, Status: "pending"}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, tenant, order_number, customer, items, delivery_fee, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), tenant, orderNumber, string(customerJSON), string(itemsJSON), deliveryFee, total, order.Status, time.Now().UTC())
	if err != nil {
		return ports.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ports.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}
	return order, nil
}

// Ensure LibSQLStore implements both persistence ports.
var (
	_ ports.ConversationStore = (*LibSQLStore)(nil)
	_ ports.OrderService      = (*LibSQLStore)(nil)
)
