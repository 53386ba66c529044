package session

import (
	"context"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/view"
)

// NewFactory returns a Factory that draws the menu into a new storefront
// document and wires an order manager to its summary.
func NewFactory(menu *service.MenuService, renderer *view.Renderer, opts ...service.Option) Factory {
	return func(ctx context.Context, id string) (*Session, error) {
		entries, err := menu.ListMenu(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list menu: %w", err)
		}
		pricing, err := menu.Pricing(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load pricing: %w", err)
		}

		doc := view.NewStorefrontDocument()
		if err := renderer.RenderMenu(doc, entries); err != nil {
			return nil, err
		}

		manager := service.NewOrderManager(pricing, renderer.SummaryView(doc), opts...)
		if err := manager.RenderSummary(); err != nil {
			return nil, err
		}

		return &Session{
			ID:       id,
			Manager:  manager,
			Document: doc,
		}, nil
	}
}
