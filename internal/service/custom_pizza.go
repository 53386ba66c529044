package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/models"
)

// ParseCustomPizza converts raw builder form values into a CustomPizza.
// An empty size or a quantity that is not a positive whole number is rejected.
func ParseCustomPizza(size string, toppings []string, quantity string) (CustomPizza, error) {
	size = strings.ToLower(strings.TrimSpace(size))
	if size == "" {
		return CustomPizza{}, ErrMissingSize
	}

	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil || qty < 1 {
		return CustomPizza{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, quantity)
	}

	selected := make([]string, 0, len(toppings))
	for _, t := range toppings {
		if t = strings.TrimSpace(t); t != "" {
			selected = append(selected, t)
		}
	}

	return CustomPizza{
		Size:     models.PizzaSize(size),
		Toppings: selected,
		Quantity: qty,
	}, nil
}
