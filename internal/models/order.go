package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem represents a single pizza line in an order.
// Price is the unit price; the line total is Price × Quantity.
type LineItem struct {
	ID          int64           `json:"id"`
	MenuID      int64           `json:"menuId,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Toppings    []string        `json:"toppings"`
	Custom      bool            `json:"custom"`
}

// LineTotal returns the price of the whole line
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is the shopper's current order
type Order struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Recalculate recomputes Total from Items.
func (o *Order) Recalculate() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	o.Total = total
}

// IsEmpty reports whether the order has no items
func (o *Order) IsEmpty() bool {
	return len(o.Items) == 0
}

// Clone returns a deep copy of the order
func (o *Order) Clone() Order {
	items := make([]LineItem, len(o.Items))
	for i, item := range o.Items {
		item.Toppings = append([]string{}, item.Toppings...)
		items[i] = item
	}
	return Order{Items: items, Total: o.Total}
}

// BuilderForm holds the values shown in the custom pizza builder
type BuilderForm struct {
	Size     PizzaSize `json:"size"`
	Toppings []string  `json:"toppings"`
	Quantity int       `json:"quantity"`
}

// DefaultBuilderForm returns the builder's initial state
func DefaultBuilderForm() BuilderForm {
	return BuilderForm{Size: DefaultSize, Toppings: []string{}, Quantity: 1}
}

// Checked reports whether the topping box is ticked
func (f BuilderForm) Checked(topping string) bool {
	for _, t := range f.Toppings {
		if t == topping {
			return true
		}
	}
	return false
}

// Receipt confirms a placed order
type Receipt struct {
	ID        string          `json:"id"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	PlacedAt  time.Time       `json:"placedAt"`
}
