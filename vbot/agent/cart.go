package agent

import (
	ports "github.com/ZanzyTHEbar/vendabot/vbot/agent/ports"
)

// Cart operations are pure: each returns a fresh slice so a wizard step
// can be rolled back by discarding its output.

// AddToCart merges a product into the cart. Re-adding an id increments
// the existing line's quantity; new ids append a line carrying a
// snapshot of the product's current price, name, and image.
func AddToCart(cart []ports.CartItem, p ports.Product, qty int) []ports.CartItem {
	out := make([]ports.CartItem, len(cart))
	copy(out, cart)

	for i := range out {
		if out[i].ID == p.ID {
			out[i].Quantity += qty
			return out
		}
	}

	return append(out, ports.CartItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    qty,
		Image:       p.Image,
		UnitType:    p.UnitType,
		BarCode:     p.BarCode,
	})
}

// RemoveFromCart deletes the line with the given id. Unknown ids are a
// no-op.
func RemoveFromCart(cart []ports.CartItem, id string) []ports.CartItem {
	out := make([]ports.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

// CartTotal sums price times quantity over all lines.
func CartTotal(cart []ports.CartItem) float64 {
	var total float64
	for _, item := range cart {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
