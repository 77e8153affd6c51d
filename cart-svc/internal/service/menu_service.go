package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"foodhub/cart-svc/internal/domain"
)

var (
	ErrMenuItemNameRequired = domain.Validation("menu item name is required")
	ErrMenuRestaurantNeeded = domain.Validation("restaurant id is required")
	ErrMenuPriceNegative    = domain.Validation("price must not be negative")
)

type MenuService struct {
	menus    MenuRepository
	resolver MenuItemResolver
	now      func() time.Time
}

func NewMenuService(menus MenuRepository, resolver MenuItemResolver) *MenuService {
	return &MenuService{menus: menus, resolver: resolver, now: time.Now}
}

// ListByRestaurant returns the flat menu items of a restaurant, optionally
// restricted to one category (case-insensitive).
func (s *MenuService) ListByRestaurant(ctx context.Context, restaurantID, category string) ([]domain.MenuItem, error) {
	items, err := s.menus.ListMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return items, nil
	}
	filtered := make([]domain.MenuItem, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Category, category) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *MenuService) Get(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	return s.resolver.Resolve(ctx, menuItemID)
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return ErrMenuItemNameRequired
	case item.RestaurantID == "":
		return ErrMenuRestaurantNeeded
	case item.Price.IsNegative():
		return ErrMenuPriceNegative
	}

	if item.MenuItemID == "" {
		item.MenuItemID = uuid.NewString()
	}
	item.IsAvailable = true
	item.CreatedAt = s.now().UTC()
	return s.menus.SaveMenuItem(ctx, item)
}
