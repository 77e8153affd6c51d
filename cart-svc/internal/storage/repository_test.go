package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/storage"
)

// brokenStore fails every call, standing in for an unreachable backend.
type brokenStore struct{ err error }

func (b brokenStore) Get(context.Context, string, string) (json.RawMessage, error) { return nil, b.err }
func (b brokenStore) Put(context.Context, string, string, json.RawMessage) error   { return b.err }
func (b brokenStore) Query(context.Context, string, string, string) ([]json.RawMessage, error) {
	return nil, b.err
}
func (b brokenStore) Scan(context.Context, string) ([]json.RawMessage, error) { return nil, b.err }
func (b brokenStore) Delete(context.Context, string, string) error           { return b.err }
func (b brokenStore) Increment(context.Context, string, string, string, int) error {
	return b.err
}

func TestRepository_Carts(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewRepository(storage.NewMemoryStore())

	missing, err := repo.FindCartByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	restaurantID := "1"
	cart := &domain.Cart{
		CartID:       "c1",
		UserID:       "u1",
		RestaurantID: &restaurantID,
		Items:        []domain.CartItem{{MenuItemID: "101", Name: "Burger", Price: decimal.RequireFromString("299.50"), Quantity: 2}},
		Subtotal:     "599.00",
	}
	require.NoError(t, repo.SaveCart(ctx, cart))

	found, err := repo.FindCartByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "c1", found.CartID)
	assert.Equal(t, "1", found.Restaurant())
	assert.True(t, found.Items[0].Price.Equal(decimal.RequireFromString("299.50")))
	assert.Equal(t, "599.00", found.Subtotal)
}

func TestRepository_MenuAndRestaurants(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewRepository(storage.NewMemoryStore())

	require.NoError(t, repo.SaveMenuItem(ctx, &domain.MenuItem{MenuItemID: "101", RestaurantID: "1", Name: "Burger"}))
	require.NoError(t, repo.SaveMenuItem(ctx, &domain.MenuItem{MenuItemID: "201", RestaurantID: "2", Name: "Ramen"}))
	require.NoError(t, repo.SaveRestaurant(ctx, &domain.Restaurant{RestaurantID: "1", Name: "Grill"}))
	require.NoError(t, repo.SaveRestaurant(ctx, &domain.Restaurant{RestaurantID: "2", Name: "Noodles"}))

	item, err := repo.GetMenuItem(ctx, "201")
	require.NoError(t, err)
	assert.Equal(t, "Ramen", item.Name)

	items, err := repo.ListMenuItems(ctx, "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "101", items[0].MenuItemID)

	require.NoError(t, repo.DeleteRestaurant(ctx, "1"))
	all, err := repo.ListRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Noodles", all[0].Name)

	gone, err := repo.GetRestaurant(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRepository_Offers(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewRepository(storage.NewMemoryStore())

	require.NoError(t, repo.SaveOffer(ctx, &domain.Offer{OfferID: "o1", Code: "SAVE100", DiscountType: domain.DiscountFlat, DiscountValue: decimal.NewFromInt(100)}))

	offer, err := repo.FindOfferByCode(ctx, "SAVE100")
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, "o1", offer.OfferID)

	require.NoError(t, repo.IncrementOfferUsage(ctx, "o1"))
	require.NoError(t, repo.IncrementOfferUsage(ctx, "o1"))
	offer, err = repo.GetOffer(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, 2, offer.UsedCount)

	err = repo.IncrementOfferUsage(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.DeleteOffer(ctx, "o1"))
	offers, err := repo.ListOffers(ctx)
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestRepository_Orders(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewRepository(storage.NewMemoryStore())

	require.NoError(t, repo.SaveOrder(ctx, &domain.Order{OrderID: "a", UserID: "u1", QRCode: []byte{0x89, 'P', 'N', 'G'}}))
	require.NoError(t, repo.SaveOrder(ctx, &domain.Order{OrderID: "b", UserID: "u2"}))

	order, err := repo.GetOrder(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, order.QRCode)

	mine, err := repo.ListOrdersByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestRepository_BackendFailuresAreStoreErrors(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewRepository(brokenStore{err: errors.New("connection refused")})

	_, err := repo.FindCartByUserID(ctx, "u1")
	assert.Equal(t, domain.KindStore, domain.KindOf(err))

	err = repo.SaveCart(ctx, &domain.Cart{CartID: "c1"})
	assert.Equal(t, domain.KindStore, domain.KindOf(err))

	_, err = repo.ListRestaurants(ctx)
	assert.ErrorIs(t, err, domain.ErrStore)

	err = repo.IncrementOfferUsage(ctx, "o1")
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestRepository_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Put(ctx, storage.TableMenuItems, "101", json.RawMessage(`{"price":{"nested":true}}`)))

	_, err := storage.NewRepository(store).GetMenuItem(ctx, "101")

	assert.ErrorIs(t, err, domain.ErrStore)
}
