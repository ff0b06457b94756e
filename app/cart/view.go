package cart

import (
	"fmt"

	"github.com/shashiranjanraj/lumina/app/models"
)

// LineItem joins a product with its nonzero cart quantity.
type LineItem struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// Summary is the derived cart view: line items in catalogue order plus
// the order total. An empty cart is a valid summary with no items.
type Summary struct {
	Items     []LineItem `json:"items"`
	ItemCount int        `json:"item_count"`
	Shipping  float64    `json:"shipping"`
	Total     float64    `json:"total"`

	// Display strings, formatted with the configured currency.
	ShippingDisplay string `json:"shipping_display"`
	TotalDisplay    string `json:"total_display"`
}

// Shipping is currently always free.
const shippingCost = 0.0

// Derive computes the cart summary from the catalogue and the quantity
// array. Pure: safe to recompute on every request. Products and quantities
// are matched positionally, so products must be in catalogue order.
func Derive(products []models.Product, items Items) Summary {
	lines := []LineItem{}
	total := 0.0
	count := 0

	for _, p := range products {
		qty := items.Quantity(int(p.ID))
		if qty <= 0 {
			continue
		}
		sub := p.Price * float64(qty)
		lines = append(lines, LineItem{Product: p, Quantity: qty, Subtotal: sub})
		total += sub
		count += qty
	}

	total += shippingCost

	return Summary{
		Items:           lines,
		ItemCount:       count,
		Shipping:        shippingCost,
		Total:           total,
		ShippingDisplay: FormatPrice(shippingCost),
		TotalDisplay:    FormatPrice(total),
	}
}

// FormatPrice renders an amount in the storefront's display format, e.g.
// "A$59.95".
func FormatPrice(amount float64) string {
	return fmt.Sprintf("A$%.2f", amount)
}
