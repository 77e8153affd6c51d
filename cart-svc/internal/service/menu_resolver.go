package service

import (
	"context"
	"sort"

	"foodhub/cart-svc/internal/domain"
)

var ErrMenuItemNotFound = domain.NotFound("menu item not found")

// MenuResolver finds a menu item in two steps: the flat menuItems collection
// first, then the embedded menus of the restaurant catalog. In the second step
// restaurants are visited in catalog order, categories in lexical order and
// items in slice order; the first match wins.
type MenuResolver struct {
	menus   MenuRepository
	catalog RestaurantCatalog
}

func NewMenuResolver(menus MenuRepository, catalog RestaurantCatalog) *MenuResolver {
	return &MenuResolver{menus: menus, catalog: catalog}
}

func (r *MenuResolver) Resolve(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	item, err := r.menus.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if item != nil {
		return item, nil
	}

	if r.catalog == nil {
		return nil, ErrMenuItemNotFound
	}
	restaurants, err := r.catalog.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, rest := range restaurants {
		if found := findEmbedded(rest, menuItemID); found != nil {
			return found, nil
		}
	}
	return nil, ErrMenuItemNotFound
}

func findEmbedded(rest domain.Restaurant, menuItemID string) *domain.MenuItem {
	categories := make([]string, 0, len(rest.Menu))
	for category := range rest.Menu {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, entry := range rest.Menu[category] {
			if !entry.Matches(menuItemID) {
				continue
			}
			return &domain.MenuItem{
				MenuItemID:   menuItemID,
				RestaurantID: rest.RestaurantID,
				Name:         entry.Name,
				Description:  entry.Description,
				Price:        entry.Price,
				Category:     category,
				Image:        entry.Image,
				IsVeg:        entry.IsVeg,
				IsAvailable:  true,
			}
		}
	}
	return nil
}
