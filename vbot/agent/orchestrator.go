package agent

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

const (
	// historyWindow bounds how much history is resent to the generator.
	// Older messages stay in storage but are not resent.
	historyWindow = 10

	// catalogLimit is how many products are loaded per step; the prompt
	// shows at most promptProductLimit of them.
	catalogLimit = 50
)

// Orchestrator composes the engine per incoming message: load
// conversation and catalog, run the wizard, persist, return the reply.
type Orchestrator struct {
	wizard  *Wizard
	store   ports.ConversationStore
	catalog ports.ProductCatalog
	tracer  ports.Tracer
	locks   *keyedLocks
}

func NewOrchestrator(wizard *Wizard, store ports.ConversationStore, catalog ports.ProductCatalog, tracer ports.Tracer) *Orchestrator {
	return &Orchestrator{
		wizard:  wizard,
		store:   store,
		catalog: catalog,
		tracer:  tracer,
		locks:   newKeyedLocks(),
	}
}

// ProcessMessage runs one inbound customer message to completion and
// returns the outgoing reply. Steps for the same (tenant, phone) pair
// are serialized; the returned error means nothing was sent and the
// transport should fall back to a generic apology.
func (o *Orchestrator) ProcessMessage(ctx context.Context, tenant, phone, text string, settings Settings) (string, error) {
	if !settings.Active {
		return "", nil
	}

	release := o.locks.Acquire(tenant + "|" + phone)
	defer release()

	ctx, finish := o.tracer.StartSpan(ctx, "process_message", map[string]any{
		"tenant": tenant,
		"phone":  phone,
	})

	reply, err := o.step(ctx, tenant, phone, text, settings)
	finish(err)
	return reply, err
}

func (o *Orchestrator) step(ctx context.Context, tenant, phone, text string, settings Settings) (string, error) {
	var (
		conversation *ports.Conversation
		products     []ports.Product
	)

	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		var err error
		conversation, err = o.store.LoadConversation(ctx, tenant, phone)
		if err != nil {
			return fmt.Errorf("failed to load conversation: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		products, err = o.catalog.Products(ctx, tenant, catalogLimit)
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return "", err
	}

	if conversation == nil {
		conversation = &ports.Conversation{Tenant: tenant, Phone: phone}
	}

	out := o.wizard.Step(ctx, StepInput{
		Tenant:   tenant,
		Settings: settings,
		Products: products,
		History:  window(conversation.Messages, historyWindow),
		Text:     text,
		Cart:     conversation.Cart,
		Customer: conversation.Customer,
	})

	messages := append(conversation.Messages,
		ports.Message{Role: "user", Content: text},
		ports.Message{Role: "assistant", Content: out.Reply},
	)

	if err := o.store.SaveConversation(ctx, tenant, phone, messages, out.Cart, out.Customer); err != nil {
		return "", fmt.Errorf("failed to save conversation: %w", err)
	}

	if out.Order != nil {
		o.tracer.Event(ctx, "order_created", map[string]any{
			"tenant":       tenant,
			"order_number": out.Order.OrderNumber,
			"total":        out.Order.Total,
		})
	}

	return out.Reply, nil
}

// Welcome returns the greeting for a first contact with this tenant.
func (o *Orchestrator) Welcome(settings Settings) string {
	return settings.Welcome()
}

// ClearCart empties the cart and resets the wizard to browsing,
// preserving message history.
func (o *Orchestrator) ClearCart(ctx context.Context, tenant, phone string) error {
	release := o.locks.Acquire(tenant + "|" + phone)
	defer release()

	conversation, err := o.store.LoadConversation(ctx, tenant, phone)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}
	if conversation == nil {
		return nil
	}
	return o.store.SaveConversation(ctx, tenant, phone, conversation.Messages, nil,
		ports.CustomerData{FlowState: ports.StateBrowsing})
}

func window(messages []ports.Message, k int) []ports.Message {
	if len(messages) <= k {
		return messages
	}
	return messages[len(messages)-k:]
}
