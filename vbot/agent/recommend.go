package agent

import (
	"strings"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

// Recommender decides which single product (if any) a browsing reply
// just recommended, so its image can be attached to the outgoing text.
type Recommender struct {
	recommendPhrases  []string
	cartActionPhrases []string
}

func NewRecommender() *Recommender {
	return &Recommender{
		// Normalized fragments that mark a reply as a recommendation.
		recommendPhrases: []string{
			"recomendo", "sugiro", "indico", "que tal", "temos",
			"experimente", "otima opcao", "otima escolha", "vai gostar",
			"vai amar", "perfeito para", "ideal para",
		},
		// Cart-action replies never get an auto-attached image, even
		// when they also look like recommendations.
		cartActionPhrases: []string{
			"adicionei", "adicionado", "coloquei", "removido", "removi",
			"carrinho", "finalizar", "fechar o pedido", "fechar pedido",
			"confirmado", "confirmar",
		},
	}
}

// Recommend returns the first catalog product mentioned in the reply,
// skipping the last recommended id so the same image is not sent twice
// in a row. ok is false when the reply is not a recommendation, is a
// cart-action utterance, mentions no product, or repeats the guard id.
func (r *Recommender) Recommend(reply string, products []ports.Product, lastID string) (ports.Product, bool) {
	normReply := Normalize(reply)
	if !containsAny(normReply, r.recommendPhrases) || containsAny(normReply, r.cartActionPhrases) {
		return ports.Product{}, false
	}

	replyTokens := tokenSet(reply)

	for _, p := range products {
		if p.Name == "" || p.Image == "" {
			continue
		}
		if !productMentioned(p, normReply, replyTokens) {
			continue
		}
		if p.ID == lastID {
			return ports.Product{}, false // anti-repeat guard
		}
		return p, true
	}
	return ports.Product{}, false
}

// productMentioned matches by literal substring of the normalized name,
// by product id, or by token overlap: names with 3+ tokens need 2
// shared tokens, shorter names need every token present.
func productMentioned(p ports.Product, normReply string, replyTokens map[string]struct{}) bool {
	normName := Normalize(p.Name)
	if normName != "" && strings.Contains(normReply, normName) {
		return true
	}
	if p.ID != "" && strings.Contains(normReply, strings.ToLower(p.ID)) {
		return true
	}

	nameTokens := Tokenize(p.Name)
	if len(nameTokens) == 0 {
		return false
	}
	required := len(nameTokens)
	if len(nameTokens) >= 3 {
		required = 2
	}

	shared := 0
	for _, tok := range nameTokens {
		if _, ok := replyTokens[tok]; ok {
			shared++
		}
	}
	return shared >= required
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
