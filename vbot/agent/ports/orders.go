package agentports

import "context"

// Order is the result of a confirmed checkout.
type Order struct {
	OrderNumber int64   `json:"orderNumber"`
	Total       float64 `json:"total"`
	Status      string  `json:"status"`
}

// OrderService creates orders from a confirmed cart. The service owns
// order numbering; callers must not assume numbers are gapless.
type OrderService interface {
	CreateOrder(ctx context.Context, tenant string, customer CustomerData, cart []CartItem, deliveryFee float64) (Order, error)
}
