package agent

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

// promptProductLimit bounds how many catalog entries the generator sees.
const promptProductLimit = 20

// PromptBuilder assembles the per-state system prompt handed to the
// generator. An optional persona file overrides the built-in persona
// header and is hot-reloaded on change.
type PromptBuilder struct {
	mu      sync.RWMutex
	persona string

	watcher *fsnotify.Watcher
	logger  zerolog.Logger
}

func NewPromptBuilder(logger zerolog.Logger) *PromptBuilder {
	return &PromptBuilder{logger: logger}
}

// WatchPersonaFile loads the persona template from path and reloads it
// whenever the file changes. Call Close to stop the watcher.
func (b *PromptBuilder) WatchPersonaFile(path string) error {
	if err := b.loadPersona(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create persona watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch persona file %s: %w", path, err)
	}
	b.watcher = watcher

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := b.loadPersona(path); err != nil {
					b.logger.Warn().Err(err).Str("path", path).Msg("persona reload failed")
					continue
				}
				b.logger.Info().Str("path", path).Msg("persona reloaded")
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				b.logger.Warn().Err(err).Msg("persona watcher error")
			}
		}
	}()

	return nil
}

// Close stops the persona watcher, if any.
func (b *PromptBuilder) Close() error {
	if b.watcher != nil {
		return b.watcher.Close()
	}
	return nil
}

func (b *PromptBuilder) loadPersona(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read persona file: %w", err)
	}
	b.mu.Lock()
	b.persona = strings.TrimSpace(string(data))
	b.mu.Unlock()
	return nil
}

// System builds the full instruction text for one generator call.
func (b *PromptBuilder) System(settings Settings, products []ports.Product, cart []ports.CartItem, customer ports.CustomerData) string {
	settings = settings.WithDefaults()

	var sb strings.Builder
	sb.WriteString(b.personaHeader(settings))
	sb.WriteString("\n\nREGRAS:\n- Respostas CURTAS (2-3 linhas)\n- Seja simpatico e direto\n- Use 1-2 emojis por mensagem\n")

	sb.WriteString("\nPRODUTOS DISPONIVEIS:\n")
	sb.WriteString(productLines(products))

	sb.WriteString("\nCARRINHO ATUAL:\n")
	sb.WriteString(cartLines(cart))
	if len(cart) > 0 {
		subtotal := CartTotal(cart)
		sb.WriteString(fmt.Sprintf("\nSubtotal: R$ %.2f | Entrega: R$ %.2f | TOTAL: R$ %.2f\n",
			subtotal, settings.DeliveryPrice, subtotal+settings.DeliveryPrice))
	}

	sb.WriteString(stateInstructions(customer))
	return sb.String()
}

func (b *PromptBuilder) personaHeader(settings Settings) string {
	b.mu.RLock()
	persona := b.persona
	b.mu.RUnlock()
	if persona != "" {
		return persona
	}
	return fmt.Sprintf("Voce e %s, assistente de vendas da %s.", settings.AgentName, settings.CompanyName)
}

func productLines(products []ports.Product) string {
	if len(products) == 0 {
		return "Nenhum produto disponivel\n"
	}
	if len(products) > promptProductLimit {
		products = products[:promptProductLimit]
	}
	var sb strings.Builder
	for _, p := range products {
		sb.WriteString(fmt.Sprintf("- %s: R$ %.2f (ID: %s)", p.Name, p.Price, p.ID))
		if p.Image != "" {
			sb.WriteString(" [imagem disponivel]")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cartLines(cart []ports.CartItem) string {
	if len(cart) == 0 {
		return "Vazio\n"
	}
	var sb strings.Builder
	for _, item := range cart {
		sb.WriteString(fmt.Sprintf("- %dx %s = R$ %.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity)))
	}
	return sb.String()
}

func stateInstructions(customer ports.CustomerData) string {
	switch customer.State() {
	case ports.StateBrowsing:
		s := `
ESTADO ATUAL: Cliente navegando/comprando
- Ajude a encontrar produtos
- Para adicionar: responda e inclua [ADD:ID_PRODUTO:QUANTIDADE]
- Para remover: responda e inclua [REMOVE:ID_PRODUTO]
- Quando cliente quiser FINALIZAR/FECHAR pedido: responda e inclua [START_CHECKOUT]`
		if lm := customer.ListMode; lm != nil && lm.Active && lm.Index < len(lm.Items) {
			s += fmt.Sprintf(`
- O cliente enviou uma LISTA DE COMPRAS com %d itens
- Trate UM item por vez. Item atual: %q
- Confirme o item com [ADD:ID_PRODUTO:QUANTIDADE] antes de passar ao proximo`,
				lm.Total, lm.Items[lm.Index])
		}
		return s

	case ports.StateConfirmingOrder:
		return fmt.Sprintf(`
ESTADO ATUAL: Confirmando pedido
Dados coletados:
- Nome: %s
- Endereco: %s, %s
- Bairro: %s
- Cidade: %s
- CEP: %s
- Complemento: %s
- Referencia: %s
- Pagamento: %s

Pergunte se esta tudo certo. Se SIM: [CONFIRM_ORDER]. Se NAO: [CANCEL_CHECKOUT]`,
			orNA(customer.Name), customer.Street, customer.Number,
			customer.Neighborhood, customer.City, customer.ZipCode,
			orNA(customer.Complement), orNA(customer.Reference), orNA(customer.PaymentType))
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
