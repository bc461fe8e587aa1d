package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

// paymentTypes maps the menu digit to the stored payment type. Anything
// else falls back to cash; input-shape errors never raise.
var paymentTypes = map[string]string{
	"1": "PaymentType.cash",
	"2": "PaymentType.creditcard",
	"3": "PaymentType.debitcard",
	"4": "PaymentType.pix",
}

var paymentNames = map[string]string{
	"1": "Dinheiro",
	"2": "Cartao Credito",
	"3": "Cartao Debito",
	"4": "PIX",
}

var (
	ufSuffix  = regexp.MustCompile(`[\s-]+([A-Za-z]{2})$`)
	nonDigits = regexp.MustCompile(`\D`)
	bareZip   = regexp.MustCompile(`^(\d{5})(\d{3})$`)
)

// StepInput carries everything one wizard step needs.
type StepInput struct {
	Tenant   string
	Settings Settings
	Products []ports.Product
	History  []ports.Message // already windowed
	Text     string
	Cart     []ports.CartItem
	Customer ports.CustomerData
}

// StepOutput is the new conversation state plus the reply to send. The
// input is never mutated; callers persist the output atomically.
type StepOutput struct {
	Reply    string
	Cart     []ports.CartItem
	Customer ports.CustomerData
	Order    *ports.Order // set when this step confirmed an order
}

// Wizard is the checkout state machine. Field-collection states are
// handled directly; the browsing state delegates reply production to
// the generator and then applies the action-tag protocol and the
// recommendation matcher to the raw reply.
type Wizard struct {
	gen    ports.Generator
	orders ports.OrderService
	prompt *PromptBuilder
	parser *TagParser
	rec    *Recommender
	tracer ports.Tracer
}

func NewWizard(gen ports.Generator, orders ports.OrderService, prompt *PromptBuilder, tracer ports.Tracer) *Wizard {
	return &Wizard{
		gen:    gen,
		orders: orders,
		prompt: prompt,
		parser: NewTagParser(),
		rec:    NewRecommender(),
		tracer: tracer,
	}
}

// Step processes one customer message. Collaborator failures are
// converted into fixed apology replies with the flow state left
// unchanged, so the customer can retry by re-sending a message.
func (w *Wizard) Step(ctx context.Context, in StepInput) StepOutput {
	out := StepOutput{Cart: in.Cart, Customer: in.Customer}
	text := strings.TrimSpace(in.Text)

	switch in.Customer.State() {
	case ports.StateBrowsing:
		return w.stepBrowsing(ctx, in)

	case ports.StateCollectingName:
		out.Customer.Name = text
		out.Customer.FlowState = ports.StateCollectingStreet
		out.Reply = fmt.Sprintf(msgAskStreet, out.Customer.Name)

	case ports.StateCollectingStreet:
		out.Customer.Street = text
		out.Customer.FlowState = ports.StateCollectingNumber
		out.Reply = msgAskNumber

	case ports.StateCollectingNumber:
		out.Customer.Number = text
		out.Customer.FlowState = ports.StateCollectingNeighborhood
		out.Reply = msgAskNeighborhood

	case ports.StateCollectingNeighborhood:
		out.Customer.Neighborhood = text
		out.Customer.FlowState = ports.StateCollectingCity
		out.Reply = msgAskCity

	case ports.StateCollectingCity:
		out.Customer.City, out.Customer.UF = splitCityUF(text)
		out.Customer.FlowState = ports.StateCollectingZipcode
		out.Reply = msgAskZipcode

	case ports.StateCollectingZipcode:
		out.Customer.ZipCode = normalizeZip(text)
		out.Customer.FlowState = ports.StateCollectingComplement
		out.Reply = msgAskComplement

	case ports.StateCollectingComplement:
		out.Customer.Complement = noneOr(text)
		out.Customer.FlowState = ports.StateCollectingReference
		out.Reply = msgAskReference

	case ports.StateCollectingReference:
		out.Customer.Reference = noneOr(text)
		out.Customer.FlowState = ports.StateCollectingPayment
		out.Reply = msgAskPayment

	case ports.StateCollectingPayment:
		out.Customer.PaymentType = paymentType(text)
		out.Customer.FlowState = ports.StateConfirmingOrder
		out.Reply = orderSummary(in.Settings, out.Cart, out.Customer, paymentName(text))

	case ports.StateConfirmingOrder:
		return w.stepConfirming(ctx, in)

	default:
		// Unknown stored state: fail open into browsing.
		out.Customer.FlowState = ports.StateBrowsing
		return w.stepBrowsing(ctx, StepInput{
			Tenant: in.Tenant, Settings: in.Settings, Products: in.Products,
			History: in.History, Text: in.Text, Cart: in.Cart, Customer: out.Customer,
		})
	}

	return out
}

// stepBrowsing runs the generator and applies tags and recommendations.
func (w *Wizard) stepBrowsing(ctx context.Context, in StepInput) StepOutput {
	out := StepOutput{Cart: in.Cart, Customer: in.Customer}

	out.Customer.ListMode = scanForList(in.Customer.ListMode, in.Text)

	system := w.prompt.System(in.Settings, in.Products, in.Cart, out.Customer)

	ctx, finish := w.tracer.StartSpan(ctx, "generate", map[string]any{"tenant": in.Tenant})
	raw, err := w.gen.Generate(ctx, system, in.History, in.Text)
	finish(err)
	if err != nil {
		out.Reply = msgGenerateFailed
		return out
	}

	clean, actions := w.parser.Parse(raw)
	st := tagState{Reply: clean, Flow: out.Customer.State(), Cart: out.Cart, Customer: out.Customer}
	for _, act := range actions {
		st = reduceAction(st, act, in.Products)
	}
	st.Customer.FlowState = st.Flow

	// Attach a product image only for recommendation replies still in
	// the browsing state; cart-action and checkout replies never get one.
	if st.Flow == ports.StateBrowsing {
		if p, ok := w.rec.Recommend(st.Reply, in.Products, st.Customer.LastRecommendedProductID); ok {
			st.Reply += fmt.Sprintf(" [IMG:%s]", p.Image)
			st.Customer.LastRecommendedProductID = p.ID
		}
	}

	out.Reply = st.Reply
	out.Cart = st.Cart
	out.Customer = st.Customer
	return out
}

// stepConfirming handles the sim/nao confirmation. The documented
// [CONFIRM_ORDER]/[CANCEL_CHECKOUT] tags are intentionally not parsed;
// the literal text match is the real contract.
func (w *Wizard) stepConfirming(ctx context.Context, in StepInput) StepOutput {
	out := StepOutput{Cart: in.Cart, Customer: in.Customer}

	switch Normalize(in.Text) {
	case "sim", "s", "confirmar", "confirmo":
		ctx, finish := w.tracer.StartSpan(ctx, "create_order", map[string]any{"tenant": in.Tenant})
		order, err := w.orders.CreateOrder(ctx, in.Tenant, in.Customer, in.Cart, in.Settings.DeliveryPrice)
		finish(err)
		if err != nil {
			// Leave ConfirmingOrder active so the customer can retry.
			out.Reply = msgOrderFailed
			return out
		}
		out.Order = &order
		out.Cart = nil
		out.Customer = ports.CustomerData{FlowState: ports.StateBrowsing}
		out.Reply = fmt.Sprintf("*PEDIDO CONFIRMADO!*\n\nNumero do pedido: *#%d*\nTotal: R$ %.2f\n\nObrigado pela preferencia! Em breve voce recebera atualizacoes sobre seu pedido.",
			order.OrderNumber, order.Total)

	case "nao", "n", "cancelar":
		out.Customer.FlowState = ports.StateBrowsing
		out.Reply = msgOrderCanceled

	default:
		out.Reply = msgConfirmRetry
	}

	return out
}

// scanForList runs list detection for a browsing message, honoring the
// one-shot suppression marker left behind by a completed list.
func scanForList(lm *ports.ListModeState, text string) *ports.ListModeState {
	if lm != nil && lm.Active {
		return lm
	}
	if lm != nil && lm.IgnoreDetectionOnce {
		cleared := *lm
		cleared.IgnoreDetectionOnce = false
		return &cleared
	}
	if detected, ok := DetectList(text); ok {
		return detected
	}
	return lm
}

// splitCityUF extracts a trailing two-letter state code, e.g.
// "Sao Paulo - SP" -> ("Sao Paulo", "SP"). Without one, uf stays empty.
func splitCityUF(text string) (city, uf string) {
	if m := ufSuffix.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(ufSuffix.ReplaceAllString(text, "")), strings.ToUpper(m[1])
	}
	return text, ""
}

// normalizeZip strips non-digits and reformats a bare 8-digit CEP as
// NNNNN-NNN. Any other digit count passes through as typed.
func normalizeZip(text string) string {
	digits := nonDigits.ReplaceAllString(text, "")
	if bareZip.MatchString(digits) {
		return bareZip.ReplaceAllString(digits, "$1-$2")
	}
	return digits
}

func noneOr(text string) string {
	if strings.EqualFold(strings.TrimSpace(text), "nao") {
		return ""
	}
	return text
}

func paymentType(text string) string {
	if t, ok := paymentTypes[strings.TrimSpace(text)]; ok {
		return t
	}
	return paymentTypes["1"]
}

func paymentName(text string) string {
	if n, ok := paymentNames[strings.TrimSpace(text)]; ok {
		return n
	}
	return paymentNames["1"]
}

// orderSummary itemizes the cart, delivery fee, total, and collected
// address. This text is produced here, never by the generator.
func orderSummary(settings Settings, cart []ports.CartItem, c ports.CustomerData, payment string) string {
	total := CartTotal(cart) + settings.DeliveryPrice

	var sb strings.Builder
	sb.WriteString("*RESUMO DO PEDIDO*\n\n*Itens:*\n")
	for _, item := range cart {
		sb.WriteString(fmt.Sprintf("- %dx %s - R$ %.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity)))
	}
	sb.WriteString(fmt.Sprintf("\n*Entrega:* R$ %.2f\n", settings.DeliveryPrice))
	sb.WriteString(fmt.Sprintf("*TOTAL:* R$ %.2f\n\n", total))
	sb.WriteString(fmt.Sprintf("*Entregar para:* %s\n", c.Name))
	sb.WriteString(fmt.Sprintf("*Endereco:* %s, %s\n", c.Street, c.Number))
	sb.WriteString(fmt.Sprintf("*Bairro:* %s\n", c.Neighborhood))
	sb.WriteString(fmt.Sprintf("*Cidade:* %s\n", c.City))
	sb.WriteString(fmt.Sprintf("*CEP:* %s\n", c.ZipCode))
	if c.Complement != "" {
		sb.WriteString(fmt.Sprintf("*Complemento:* %s\n", c.Complement))
	}
	if c.Reference != "" {
		sb.WriteString(fmt.Sprintf("*Referencia:* %s\n", c.Reference))
	}
	sb.WriteString(fmt.Sprintf("*Pagamento:* %s\n\n", payment))
	sb.WriteString("Esta tudo certo? Responda *SIM* para confirmar ou *NAO* para cancelar.")
	return sb.String()
}
