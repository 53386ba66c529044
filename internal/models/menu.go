package models

import "github.com/shopspring/decimal"

// MenuEntry represents a pizza listed on the storefront menu
type MenuEntry struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

// PizzaSize names a custom pizza size tier
type PizzaSize string

const (
	SizeSmall  PizzaSize = "small"
	SizeMedium PizzaSize = "medium"
	SizeLarge  PizzaSize = "large"
)

// DefaultSize is the size preselected in the custom pizza builder
const DefaultSize = SizeSmall

// SizeOption is one size tier with its base price
type SizeOption struct {
	Size      PizzaSize       `json:"size"`
	BasePrice decimal.Decimal `json:"basePrice"`
}

// Pricing holds the custom pizza builder rules
type Pricing struct {
	Sizes            []SizeOption    `json:"sizes"`
	Toppings         []string        `json:"toppings"`
	ToppingSurcharge decimal.Decimal `json:"toppingSurcharge"`
}

// BasePrice returns the base price of the given size tier.
func (p Pricing) BasePrice(size PizzaSize) (decimal.Decimal, bool) {
	for _, opt := range p.Sizes {
		if opt.Size == size {
			return opt.BasePrice, true
		}
	}
	return decimal.Zero, false
}

// HasTopping reports whether the topping can be selected in the builder.
func (p Pricing) HasTopping(name string) bool {
	for _, t := range p.Toppings {
		if t == name {
			return true
		}
	}
	return false
}
