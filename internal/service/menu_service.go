package service

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/pizza-storefront/internal/repository"
)

// MenuService handles business logic for the pizza menu
type MenuService struct {
	repo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// ListMenu returns every menu entry in menu order
func (s *MenuService) ListMenu(ctx context.Context) ([]models.MenuEntry, error) {
	return s.repo.GetAll(ctx)
}

// GetMenuEntry returns a menu entry by ID
func (s *MenuService) GetMenuEntry(ctx context.Context, id int64) (*models.MenuEntry, error) {
	return s.repo.GetByID(ctx, id)
}

// Pricing returns the custom pizza pricing rules
func (s *MenuService) Pricing(ctx context.Context) (models.Pricing, error) {
	return s.repo.Pricing(ctx)
}
