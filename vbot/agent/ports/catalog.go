package agentports

import "context"

// Product is a read-only catalog entry sourced externally.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	UnitType    string  `json:"unityType,omitempty"`
	BarCode     string  `json:"barCode,omitempty"`
}

// ProductCatalog lists the active products for a tenant in catalog order.
type ProductCatalog interface {
	Products(ctx context.Context, tenant string, limit int) ([]Product, error)
}
