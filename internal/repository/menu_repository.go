package repository

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrMenuEntryNotFound = errors.New("menu entry not found")
)

// MenuRepository defines the interface for menu data access
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuEntry, error)
	GetByID(ctx context.Context, id int64) (*models.MenuEntry, error)
	Pricing(ctx context.Context) (models.Pricing, error)
}

// InMemoryMenuRepository implements MenuRepository with in-memory storage.
// Entries keep the order they were loaded in.
type InMemoryMenuRepository struct {
	entries []models.MenuEntry
	byID    map[int64]int
	pricing models.Pricing
}

// NewInMemoryMenuRepository creates a new in-memory menu repository with the house menu
func NewInMemoryMenuRepository() *InMemoryMenuRepository {
	repo, _ := NewMenuRepository(DefaultMenu(), DefaultPricing())
	return repo
}

// NewMenuRepository creates a repository over the given entries and pricing rules
func NewMenuRepository(entries []models.MenuEntry, pricing models.Pricing) (*InMemoryMenuRepository, error) {
	if err := validateMenu(entries, pricing); err != nil {
		return nil, err
	}

	byID := make(map[int64]int, len(entries))
	for i, entry := range entries {
		byID[entry.ID] = i
	}

	return &InMemoryMenuRepository{
		entries: append([]models.MenuEntry{}, entries...),
		byID:    byID,
		pricing: pricing,
	}, nil
}

// DefaultMenu returns the four house pizzas
func DefaultMenu() []models.MenuEntry {
	return []models.MenuEntry{
		{ID: 1, Name: "Margherita", Description: "Tomato sauce, mozzarella, basil", Price: decimal.RequireFromString("10.99"), Image: "🍕"},
		{ID: 2, Name: "Pepperoni", Description: "Pepperoni, mozzarella, tomato sauce", Price: decimal.RequireFromString("12.99"), Image: "🍕"},
		{ID: 3, Name: "Vegetarian", Description: "Mixed vegetables, mozzarella", Price: decimal.RequireFromString("11.99"), Image: "🍕"},
		{ID: 4, Name: "Hawaiian", Description: "Ham, pineapple, mozzarella", Price: decimal.RequireFromString("13.99"), Image: "🍕"},
	}
}

// DefaultPricing returns the custom pizza size tiers and toppings
func DefaultPricing() models.Pricing {
	return models.Pricing{
		Sizes: []models.SizeOption{
			{Size: models.SizeSmall, BasePrice: decimal.NewFromInt(10)},
			{Size: models.SizeMedium, BasePrice: decimal.NewFromInt(12)},
			{Size: models.SizeLarge, BasePrice: decimal.NewFromInt(15)},
		},
		Toppings:         []string{"pepperoni", "mushroom", "onion", "olive", "green pepper", "extra cheese"},
		ToppingSurcharge: decimal.NewFromInt(1),
	}
}

// GetAll returns all menu entries in menu order
func (r *InMemoryMenuRepository) GetAll(ctx context.Context) ([]models.MenuEntry, error) {
	entries := make([]models.MenuEntry, len(r.entries))
	copy(entries, r.entries)
	return entries, nil
}

// GetByID returns a menu entry by its ID
func (r *InMemoryMenuRepository) GetByID(ctx context.Context, id int64) (*models.MenuEntry, error) {
	idx, exists := r.byID[id]
	if !exists {
		return nil, ErrMenuEntryNotFound
	}
	entry := r.entries[idx]
	return &entry, nil
}

// Pricing returns the custom pizza pricing rules
func (r *InMemoryMenuRepository) Pricing(ctx context.Context) (models.Pricing, error) {
	p := r.pricing
	p.Sizes = append([]models.SizeOption{}, r.pricing.Sizes...)
	p.Toppings = append([]string{}, r.pricing.Toppings...)
	return p, nil
}
