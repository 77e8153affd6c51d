package storage

import (
	"context"
	"encoding/json"
	"errors"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/service"
)

// Repository maps domain entities onto a DocumentStore. Backend failures are
// reported as KindStore errors.
type Repository struct {
	store DocumentStore
}

func NewRepository(store DocumentStore) *Repository {
	return &Repository{store: store}
}

var (
	_ service.CartRepository       = (*Repository)(nil)
	_ service.MenuRepository       = (*Repository)(nil)
	_ service.RestaurantRepository = (*Repository)(nil)
	_ service.OfferRepository      = (*Repository)(nil)
	_ service.OrderRepository      = (*Repository)(nil)
)

func (r *Repository) FindCartByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	carts, err := query[domain.Cart](ctx, r.store, TableCarts, "userId", userID)
	if err != nil || len(carts) == 0 {
		return nil, err
	}
	return &carts[0], nil
}

func (r *Repository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	return put(ctx, r.store, TableCarts, cart.CartID, cart)
}

func (r *Repository) GetMenuItem(ctx context.Context, menuItemID string) (*domain.MenuItem, error) {
	return get[domain.MenuItem](ctx, r.store, TableMenuItems, menuItemID)
}

func (r *Repository) ListMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	return query[domain.MenuItem](ctx, r.store, TableMenuItems, "restaurantId", restaurantID)
}

func (r *Repository) SaveMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return put(ctx, r.store, TableMenuItems, item.MenuItemID, item)
}

func (r *Repository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return scan[domain.Restaurant](ctx, r.store, TableRestaurants)
}

func (r *Repository) GetRestaurant(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	return get[domain.Restaurant](ctx, r.store, TableRestaurants, restaurantID)
}

func (r *Repository) SaveRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return put(ctx, r.store, TableRestaurants, rest.RestaurantID, rest)
}

func (r *Repository) DeleteRestaurant(ctx context.Context, restaurantID string) error {
	return wrap("delete "+TableRestaurants, r.store.Delete(ctx, TableRestaurants, restaurantID))
}

func (r *Repository) FindOfferByCode(ctx context.Context, code string) (*domain.Offer, error) {
	offers, err := query[domain.Offer](ctx, r.store, TableOffers, "code", code)
	if err != nil || len(offers) == 0 {
		return nil, err
	}
	return &offers[0], nil
}

func (r *Repository) GetOffer(ctx context.Context, offerID string) (*domain.Offer, error) {
	return get[domain.Offer](ctx, r.store, TableOffers, offerID)
}

func (r *Repository) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	return scan[domain.Offer](ctx, r.store, TableOffers)
}

func (r *Repository) SaveOffer(ctx context.Context, offer *domain.Offer) error {
	return put(ctx, r.store, TableOffers, offer.OfferID, offer)
}

func (r *Repository) DeleteOffer(ctx context.Context, offerID string) error {
	return wrap("delete "+TableOffers, r.store.Delete(ctx, TableOffers, offerID))
}

func (r *Repository) IncrementOfferUsage(ctx context.Context, offerID string) error {
	return wrap("increment "+TableOffers, r.store.Increment(ctx, TableOffers, offerID, "usedCount", 1))
}

func (r *Repository) SaveOrder(ctx context.Context, order *domain.Order) error {
	return put(ctx, r.store, TableOrders, order.OrderID, order)
}

func (r *Repository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	return get[domain.Order](ctx, r.store, TableOrders, orderID)
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return query[domain.Order](ctx, r.store, TableOrders, "userId", userID)
}

func get[T any](ctx context.Context, store DocumentStore, table, key string) (*T, error) {
	doc, err := store.Get(ctx, table, key)
	if err != nil {
		return nil, wrap("get "+table, err)
	}
	if doc == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, wrap("decode "+table, err)
	}
	return &v, nil
}

func query[T any](ctx context.Context, store DocumentStore, table, attribute, value string) ([]T, error) {
	docs, err := store.Query(ctx, table, attribute, value)
	if err != nil {
		return nil, wrap("query "+table, err)
	}
	return decodeAll[T](table, docs)
}

func scan[T any](ctx context.Context, store DocumentStore, table string) ([]T, error) {
	docs, err := store.Scan(ctx, table)
	if err != nil {
		return nil, wrap("scan "+table, err)
	}
	return decodeAll[T](table, docs)
}

func decodeAll[T any](table string, docs []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := json.Unmarshal(doc, &v); err != nil {
			return nil, wrap("decode "+table, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func put(ctx context.Context, store DocumentStore, table, key string, v interface{}) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return wrap("encode "+table, err)
	}
	return wrap("put "+table, store.Put(ctx, table, key, doc))
}

// wrap keeps typed domain errors and turns everything else into a store failure.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var derr *domain.Error
	if errors.As(err, &derr) {
		return err
	}
	return domain.StoreFailure(op, err)
}
