package agent

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ZanzyTHEbar/vendabot/vbot/agent/adapters"
	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
	"github.com/ZanzyTHEbar/vendabot/vbot/config"
)

// Factory creates and wires engine components from configuration.
type Factory struct {
	cfg    *config.Config
	db     *sql.DB // optional, for persistence and catalog
	logger zerolog.Logger
}

func NewFactory(cfg *config.Config, db *sql.DB, logger zerolog.Logger) *Factory {
	return &Factory{cfg: cfg, db: db, logger: logger}
}

// CreateOrchestrator wires a fully configured orchestrator. The
// generator is injected separately since it is credential-specific.
func (f *Factory) CreateOrchestrator(gen ports.Generator) (*Orchestrator, error) {
	tracer := f.createTracer()

	store, orders, err := f.createStore()
	if err != nil {
		return nil, err
	}

	catalog, err := f.createCatalog()
	if err != nil {
		return nil, err
	}

	prompt := NewPromptBuilder(f.logger)
	if path := f.cfg.Agent.PersonaFile; path != "" {
		if err := prompt.WatchPersonaFile(path); err != nil {
			return nil, fmt.Errorf("failed to set up persona file: %w", err)
		}
	}

	wizard := NewWizard(gen, orders, prompt, tracer)
	return NewOrchestrator(wizard, store, catalog, tracer), nil
}

// DefaultSettings builds the tenant-independent fallback settings.
func (f *Factory) DefaultSettings() Settings {
	return Settings{
		AgentName:      f.cfg.Agent.Name,
		CompanyName:    f.cfg.Agent.CompanyName,
		DeliveryPrice:  f.cfg.Agent.DeliveryPrice,
		WelcomeMessage: f.cfg.Agent.WelcomeMessage,
		Active:         f.cfg.Agent.Active,
	}.WithDefaults()
}

func (f *Factory) createTracer() ports.Tracer {
	if !f.cfg.Trace.Enabled {
		return &noOpTracer{}
	}
	return adapters.NewZerologTracer(f.logger)
}

func (f *Factory) createStore() (ports.ConversationStore, ports.OrderService, error) {
	if f.db == nil {
		s := &noOpStore{}
		return s, s, nil
	}
	store, err := adapters.NewLibSQLStore(f.db)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create store: %w", err)
	}
	return store, store, nil
}

func (f *Factory) createCatalog() (ports.ProductCatalog, error) {
	if f.db == nil {
		return &noOpCatalog{}, nil
	}
	catalog, err := adapters.NewLibSQLCatalog(f.db, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}
	if !f.cfg.Catalog.CacheEnabled {
		return catalog, nil
	}
	cache := adapters.NewLRUCache(f.cfg.Catalog.CacheCapacity)
	return adapters.NewCachedCatalog(catalog, cache, f.cfg.Catalog.CacheTTLSeconds), nil
}

// noOpTracer discards spans and events.
type noOpTracer struct{}

func (t *noOpTracer) StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error)) {
	return ctx, func(err error) {}
}
func (t *noOpTracer) Event(ctx context.Context, name string, attrs map[string]any) {}

// noOpStore keeps nothing and creates nothing; used in tests and when
// no database is configured.
type noOpStore struct{}

func (s *noOpStore) LoadConversation(ctx context.Context, tenant, phone string) (*ports.Conversation, error) {
	return nil, nil
}

func (s *noOpStore) SaveConversation(ctx context.Context, tenant, phone string, messages []ports.Message, cart []ports.CartItem, customer ports.CustomerData) error {
	return nil
}

func (s *noOpStore) CreateOrder(ctx context.Context, tenant string, customer ports.CustomerData, cart []ports.CartItem, deliveryFee float64) (ports.Order, error) {
	return ports.Order{}, fmt.Errorf("order store not configured")
}

// noOpCatalog serves an empty catalog.
type noOpCatalog struct{}

func (c *noOpCatalog) Products(ctx context.Context, tenant string, limit int) ([]ports.Product, error) {
	return nil, nil
}

var (
	_ ports.Tracer            = (*noOpTracer)(nil)
	_ ports.ConversationStore = (*noOpStore)(nil)
	_ ports.OrderService      = (*noOpStore)(nil)
	_ ports.ProductCatalog    = (*noOpCatalog)(nil)
)
