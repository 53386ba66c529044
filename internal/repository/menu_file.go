package repository

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidMenu is returned when a menu file or menu definition is rejected
var ErrInvalidMenu = errors.New("invalid menu")

// menuFile mirrors the YAML layout of a menu file:
//
//	pizzas:
//	  - id: 1
//	    name: Margherita
//	    description: Tomato sauce, mozzarella, basil
//	    price: "10.99"
//	    image: "🍕"
//	sizes:
//	  - size: small
//	    basePrice: "10"
//	toppings: [mushroom, olive]
//	toppingSurcharge: "1"
//
// Sizes, toppings and the surcharge fall back to the house pricing when omitted.
type menuFile struct {
	Pizzas []struct {
		ID          int64  `yaml:"id"`
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Price       string `yaml:"price"`
		Image       string `yaml:"image"`
	} `yaml:"pizzas"`
	Sizes []struct {
		Size      string `yaml:"size"`
		BasePrice string `yaml:"basePrice"`
	} `yaml:"sizes"`
	Toppings         []string `yaml:"toppings"`
	ToppingSurcharge string   `yaml:"toppingSurcharge"`
}

// LoadMenuFile reads a YAML menu file and builds a repository from it
func LoadMenuFile(path string) (*InMemoryMenuRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	return LoadMenu(f)
}

// LoadMenu decodes a YAML menu from r
func LoadMenu(r io.Reader) (*InMemoryMenuRepository, error) {
	var file menuFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}

	entries := make([]models.MenuEntry, 0, len(file.Pizzas))
	for _, p := range file.Pizzas {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: pizza %d price %q: %v", ErrInvalidMenu, p.ID, p.Price, err)
		}
		entries = append(entries, models.MenuEntry{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       price,
			Image:       p.Image,
		})
	}

	pricing := DefaultPricing()
	if len(file.Sizes) > 0 {
		pricing.Sizes = make([]models.SizeOption, 0, len(file.Sizes))
		for _, s := range file.Sizes {
			base, err := decimal.NewFromString(s.BasePrice)
			if err != nil {
				return nil, fmt.Errorf("%w: size %q base price %q: %v", ErrInvalidMenu, s.Size, s.BasePrice, err)
			}
			pricing.Sizes = append(pricing.Sizes, models.SizeOption{
				Size:      models.PizzaSize(strings.ToLower(strings.TrimSpace(s.Size))),
				BasePrice: base,
			})
		}
	}
	if len(file.Toppings) > 0 {
		pricing.Toppings = file.Toppings
	}
	if file.ToppingSurcharge != "" {
		surcharge, err := decimal.NewFromString(file.ToppingSurcharge)
		if err != nil {
			return nil, fmt.Errorf("%w: topping surcharge %q: %v", ErrInvalidMenu, file.ToppingSurcharge, err)
		}
		pricing.ToppingSurcharge = surcharge
	}

	return NewMenuRepository(entries, pricing)
}

// validateMenu checks the invariants every menu must satisfy
func validateMenu(entries []models.MenuEntry, pricing models.Pricing) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no pizzas", ErrInvalidMenu)
	}

	seen := make(map[int64]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate pizza id %d", ErrInvalidMenu, e.ID)
		}
		seen[e.ID] = true

		if e.Name == "" {
			return fmt.Errorf("%w: pizza %d has no name", ErrInvalidMenu, e.ID)
		}
		if !e.Price.IsPositive() {
			return fmt.Errorf("%w: pizza %d price must be positive", ErrInvalidMenu, e.ID)
		}
	}

	if len(pricing.Sizes) == 0 {
		return fmt.Errorf("%w: no sizes", ErrInvalidMenu)
	}
	sizes := make(map[models.PizzaSize]bool, len(pricing.Sizes))
	for _, s := range pricing.Sizes {
		if s.Size == "" || sizes[s.Size] {
			return fmt.Errorf("%w: empty or duplicate size %q", ErrInvalidMenu, s.Size)
		}
		sizes[s.Size] = true
		if !s.BasePrice.IsPositive() {
			return fmt.Errorf("%w: size %q base price must be positive", ErrInvalidMenu, s.Size)
		}
	}
	if !sizes[models.DefaultSize] {
		return fmt.Errorf("%w: size %q is required", ErrInvalidMenu, models.DefaultSize)
	}
	if pricing.ToppingSurcharge.IsNegative() {
		return fmt.Errorf("%w: topping surcharge must not be negative", ErrInvalidMenu)
	}

	return nil
}
