package adapters

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

// productSchema validates catalog documents before they reach the
// engine; rows written by other tools can be malformed.
const productSchema = `{
	"type": "object",
	"required": ["id", "name", "price"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"name": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"price": {"type": "number", "minimum": 0},
		"image": {"type": "string"},
		"unityType": {"type": "string"},
		"barCode": {"type": "string"}
	}
}`

// LibSQLCatalog reads active product documents for a tenant in catalog
// order.
type LibSQLCatalog struct {
	db     *sql.DB
	schema *gojsonschema.Schema
	logger zerolog.Logger
}

func NewLibSQLCatalog(db *sql.DB, logger zerolog.Logger) (*LibSQLCatalog, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(productSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile product schema: %w", err)
	}
	return &LibSQLCatalog{db: db, schema: schema, logger: logger}, nil
}

// Products returns up to limit valid products. Invalid documents are
// skipped with a warning rather than failing the whole lookup.
func (c *LibSQLCatalog) Products(ctx context.Context, tenant string, limit int) ([]ports.Product, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT doc FROM products WHERE tenant = ? AND active = 1 ORDER BY position, id LIMIT ?`,
		tenant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []ports.Product
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		result, err := c.schema.Validate(gojsonschema.NewStringLoader(doc))
		if err != nil || !result.Valid() {
			c.logger.Warn().Str("tenant", tenant).Msg("skipping invalid product document")
			continue
		}

		var p ports.Product
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			c.logger.Warn().Err(err).Str("tenant", tenant).Msg("skipping unreadable product document")
			continue
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

var _ ports.ProductCatalog = (*LibSQLCatalog)(nil)
