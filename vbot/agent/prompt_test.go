package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

func TestSystem_BrowsingPrompt(t *testing.T) {
	b := NewPromptBuilder(zerolog.Nop())
	products := []ports.Product{
		{ID: "P1", Name: "Arroz", Price: 10, Image: "http://img/p1.png"},
		{ID: "P2", Name: "Feijao", Price: 8},
	}
	cart := []ports.CartItem{{ID: "P1", Name: "Arroz", Price: 10, Quantity: 2}}

	system := b.System(Settings{AgentName: "Lia", CompanyName: "Mercadinho", DeliveryPrice: 5}, products, cart, ports.CustomerData{})

	assert.Contains(t, system, "Voce e Lia, assistente de vendas da Mercadinho.")
	assert.Contains(t, system, "REGRAS:")
	assert.Contains(t, system, "- Arroz: R$ 10.00 (ID: P1) [imagem disponivel]")
	assert.Contains(t, system, "- Feijao: R$ 8.00 (ID: P2)\n")
	assert.NotContains(t, system, "Feijao: R$ 8.00 (ID: P2) [imagem")
	assert.Contains(t, system, "- 2x Arroz = R$ 20.00")
	assert.Contains(t, system, "Subtotal: R$ 20.00 | Entrega: R$ 5.00 | TOTAL: R$ 25.00")
	assert.Contains(t, system, "[START_CHECKOUT]")
}

func TestSystem_EmptyCatalogAndCart(t *testing.T) {
	b := NewPromptBuilder(zerolog.Nop())

	system := b.System(Settings{}, nil, nil, ports.CustomerData{})

	assert.Contains(t, system, "Voce e Max, assistente de vendas da nossa loja.")
	assert.Contains(t, system, "Nenhum produto disponivel")
	assert.Contains(t, system, "CARRINHO ATUAL:\nVazio")
	assert.NotContains(t, system, "Subtotal:")
}

func TestSystem_TruncatesCatalog(t *testing.T) {
	b := NewPromptBuilder(zerolog.Nop())
	var products []ports.Product
	for i := 0; i < promptProductLimit+5; i++ {
		products = append(products, ports.Product{ID: fmt.Sprintf("P%d", i), Name: fmt.Sprintf("Produto %d", i), Price: 1})
	}

	system := b.System(Settings{}, products, nil, ports.CustomerData{})

	assert.Contains(t, system, "(ID: P19)")
	assert.NotContains(t, system, "(ID: P20)")
	assert.Equal(t, promptProductLimit, strings.Count(system, "(ID: P"))
}

func TestSystem_ListModeInstructions(t *testing.T) {
	b := NewPromptBuilder(zerolog.Nop())
	customer := ports.CustomerData{ListMode: &ports.ListModeState{
		Items:  []string{"arroz", "feijao"},
		Index:  1,
		Total:  2,
		Active: true,
	}}

	system := b.System(Settings{}, nil, nil, customer)

	assert.Contains(t, system, "LISTA DE COMPRAS com 2 itens")
	assert.Contains(t, system, `Item atual: "feijao"`)
}

func TestSystem_ConfirmingPrompt(t *testing.T) {
	b := NewPromptBuilder(zerolog.Nop())
	customer := ports.CustomerData{
		FlowState:    ports.StateConfirmingOrder,
		Name:         "Joao",
		Street:       "Rua A",
		Number:       "1",
		Neighborhood: "Centro",
		City:         "Sao Paulo",
		ZipCode:      "01310-100",
		PaymentType:  "PaymentType.pix",
	}

	system := b.System(Settings{}, nil, nil, customer)

	assert.Contains(t, system, "ESTADO ATUAL: Confirmando pedido")
	assert.Contains(t, system, "- Nome: Joao")
	assert.Contains(t, system, "- Complemento: N/A")
	assert.Contains(t, system, "[CONFIRM_ORDER]")
	assert.Contains(t, system, "[CANCEL_CHECKOUT]")
}

func TestWatchPersonaFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.txt")
	require.NoError(t, os.WriteFile(path, []byte("Voce e o Bob, vendedor raiz.\n"), 0o644))

	b := NewPromptBuilder(zerolog.Nop())
	require.NoError(t, b.WatchPersonaFile(path))
	defer b.Close()

	system := b.System(Settings{}, nil, nil, ports.CustomerData{})
	assert.Contains(t, system, "Voce e o Bob, vendedor raiz.")
	assert.NotContains(t, system, "assistente de vendas")

	require.NoError(t, os.WriteFile(path, []byte("Voce e a Ana, sommelier da loja."), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(b.System(Settings{}, nil, nil, ports.CustomerData{}), "Ana")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatchPersonaFile_MissingFile(t *testing.T) {
	b := NewPromptBuilder(zerolog.Nop())
	err := b.WatchPersonaFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
