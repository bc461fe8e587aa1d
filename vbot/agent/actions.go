package agent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

// Action is one cart/state mutation requested by the generator through
// a bracketed tag embedded in its reply text.
type Action interface{ isAction() }

// AddAction merges a catalog product into the cart.
type AddAction struct {
	ProductID string
	Quantity  int
}

// RemoveAction deletes a cart line.
type RemoveAction struct {
	ProductID string
}

// StartCheckoutAction begins the address/payment wizard.
type StartCheckoutAction struct{}

// ImageAction attaches a product image to the outgoing reply.
type ImageAction struct {
	URL string
}

func (AddAction) isAction()           {}
func (RemoveAction) isAction()        {}
func (StartCheckoutAction) isAction() {}
func (ImageAction) isAction()         {}

// TagParser extracts action tags from generated reply text. Product ids
// are matched up to the next ':' or ']', so ids containing those
// characters are unsupported. Unrecognized bracket tokens pass through
// untouched.
type TagParser struct {
	start  *regexp.Regexp
	add    *regexp.Regexp
	remove *regexp.Regexp
	img    *regexp.Regexp
	gaps   *regexp.Regexp
}

func NewTagParser() *TagParser {
	return &TagParser{
		start:  regexp.MustCompile(`\[START_CHECKOUT\]`),
		add:    regexp.MustCompile(`\[ADD:([^:\]]+):(\d+)\]`),
		remove: regexp.MustCompile(`\[REMOVE:([^\]]+)\]`),
		img:    regexp.MustCompile(`\[IMG:([^\]]+)\]`),
		gaps:   regexp.MustCompile(`[ \t]{2,}`),
	}
}

// Parse returns the reply with all recognized tags stripped and the
// actions they encode. Only the first match of each tag kind is
// honored, in fixed order: START_CHECKOUT, ADD, REMOVE, IMG.
func (p *TagParser) Parse(text string) (string, []Action) {
	var actions []Action

	if p.start.MatchString(text) {
		actions = append(actions, StartCheckoutAction{})
	}
	if m := p.add.FindStringSubmatch(text); m != nil {
		qty, err := strconv.Atoi(m[2])
		if err == nil {
			actions = append(actions, AddAction{ProductID: m[1], Quantity: qty})
		}
	}
	if m := p.remove.FindStringSubmatch(text); m != nil {
		actions = append(actions, RemoveAction{ProductID: m[1]})
	}
	if m := p.img.FindStringSubmatch(text); m != nil {
		actions = append(actions, ImageAction{URL: m[1]})
	}

	clean := p.start.ReplaceAllString(text, "")
	clean = p.add.ReplaceAllString(clean, "")
	clean = p.remove.ReplaceAllString(clean, "")
	clean = p.img.ReplaceAllString(clean, "")
	clean = p.gaps.ReplaceAllString(clean, " ")

	return strings.TrimSpace(clean), actions
}

// tagState threads the browsing-state reply and conversation state
// through the action reducer.
type tagState struct {
	Reply    string
	Flow     ports.FlowState
	Cart     []ports.CartItem
	Customer ports.CustomerData
}

// reduceAction applies one action to the state, returning the new
// state. It is pure: the input state is never mutated.
func reduceAction(st tagState, act Action, products []ports.Product) tagState {
	switch a := act.(type) {
	case StartCheckoutAction:
		if len(st.Cart) == 0 {
			// Empty-cart guard: the visible reply is replaced entirely
			// and no state change occurs.
			st.Reply = msgEmptyCart
			return st
		}
		st.Flow = ports.StateCollectingName
		st.Customer.FlowState = st.Flow
		st.Reply += msgAskName
		return st

	case AddAction:
		product, ok := findProduct(products, a.ProductID)
		if !ok {
			return st // unknown id: tag already stripped, nothing to do
		}
		st.Cart = AddToCart(st.Cart, product, a.Quantity)
		return advanceListMode(st)

	case RemoveAction:
		st.Cart = RemoveFromCart(st.Cart, a.ProductID)
		return st

	case ImageAction:
		// IMG tags are produced by the recommendation matcher and pass
		// through to the transport layer unchanged.
		return st
	}
	return st
}

// advanceListMode moves an active shopping list forward after an ADD,
// appending either the next-item prompt or the completion prompt. When
// no list is active it appends a generic upsell question unless the
// reply already ends in one.
func advanceListMode(st tagState) tagState {
	lm := st.Customer.ListMode
	if lm == nil || !lm.Active {
		if !strings.HasSuffix(strings.TrimSpace(st.Reply), "?") {
			st.Reply = strings.TrimSpace(st.Reply) + "\n\n" + msgUpsell
		}
		return st
	}

	next := *lm
	next.Index++
	next.Done++

	if next.Done >= next.Total || next.Index >= len(next.Items) {
		// List finished: leave only a one-shot marker so the next
		// browsing message is not re-scanned for the same list.
		st.Customer.ListMode = &ports.ListModeState{IgnoreDetectionOnce: true}
		st.Reply = strings.TrimSpace(st.Reply) + "\n\n" + msgListComplete
		return st
	}

	st.Customer.ListMode = &next
	st.Reply = strings.TrimSpace(st.Reply) + "\n\n" + fmt.Sprintf(msgListNextItem, next.Items[next.Index])
	return st
}

func findProduct(products []ports.Product, id string) (ports.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return ports.Product{}, false
}
