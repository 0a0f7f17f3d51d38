package checkout

import "github.com/google/uuid"

// OrderItem is what the external payment flow needs to price one line.
type OrderItem struct {
	PackageID      string `json:"packageId"`
	UnitPriceCents int64  `json:"unitPrice"`
	Quantity       int    `json:"quantity"`
}

// Order is the hand-off to the external payment-initiation flow. The total
// is pre-tax; tax is applied outside the coordinator.
type Order struct {
	ID         uuid.UUID   `json:"id"`
	Items      []OrderItem `json:"items"`
	TotalCents int64       `json:"total"`
}

func buildOrder(lines []CartLine) *Order {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			PackageID:      l.ID,
			UnitPriceCents: l.PriceCents,
			Quantity:       l.Quantity,
		})
	}

	return &Order{
		ID:         uuid.New(),
		Items:      items,
		TotalCents: totalCents(lines),
	}
}
