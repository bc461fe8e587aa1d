package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

func TestAddToCart_MergesById(t *testing.T) {
	p := ports.Product{ID: "P1", Name: "Arroz", Price: 10}

	cart := AddToCart(nil, p, 2)
	cart = AddToCart(cart, p, 3)

	require.Len(t, cart, 1)
	assert.Equal(t, "P1", cart[0].ID)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestAddToCart_SnapshotsPrice(t *testing.T) {
	p := ports.Product{ID: "P1", Name: "Arroz", Price: 10}
	cart := AddToCart(nil, p, 1)

	// A later catalog price change must not affect the existing line.
	p.Price = 99
	cart = AddToCart(cart, p, 1)

	require.Len(t, cart, 1)
	assert.Equal(t, 10.0, cart[0].Price)
}

func TestAddToCart_DoesNotMutateInput(t *testing.T) {
	original := []ports.CartItem{{ID: "P1", Price: 10, Quantity: 1}}

	_ = AddToCart(original, ports.Product{ID: "P1", Price: 10}, 4)

	assert.Equal(t, 1, original[0].Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	cart := []ports.CartItem{
		{ID: "P1", Quantity: 1},
		{ID: "P2", Quantity: 2},
	}

	cart = RemoveFromCart(cart, "P1")
	require.Len(t, cart, 1)
	assert.Equal(t, "P2", cart[0].ID)

	// Removing an absent id is a no-op.
	cart = RemoveFromCart(cart, "P9")
	assert.Len(t, cart, 1)
}

func TestCartTotal(t *testing.T) {
	cart := []ports.CartItem{
		{ID: "P1", Price: 10, Quantity: 2},
		{ID: "P2", Price: 2.5, Quantity: 4},
	}
	assert.Equal(t, 30.0, CartTotal(cart))
	assert.Equal(t, 0.0, CartTotal(nil))
}
