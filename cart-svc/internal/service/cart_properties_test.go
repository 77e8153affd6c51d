package service_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/pricing"
	"foodhub/cart-svc/internal/service"
	"foodhub/cart-svc/internal/storage"
)

type stubResolver map[string]*domain.MenuItem

func (s stubResolver) Resolve(_ context.Context, menuItemID string) (*domain.MenuItem, error) {
	if item, ok := s[menuItemID]; ok {
		return item, nil
	}
	return nil, service.ErrMenuItemNotFound
}

var catalogue = stubResolver{
	"101": menuItem("101", "1", "299"),
	"102": menuItem("102", "1", "12.49"),
	"103": menuItem("103", "1", "0.99"),
	"201": menuItem("201", "2", "100"),
	"202": menuItem("202", "2", "45.50"),
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func newStoreBackedCarts() (*service.CartService, *storage.Repository) {
	repo := storage.NewRepository(storage.NewMemoryStore())
	return newCartService(repo, catalogue, nil), repo
}

func TestCartAdditivity(t *testing.T) {
	tests := []struct {
		name   string
		itemID string
		q1, q2 int
	}{
		{name: "single units", itemID: "101", q1: 1, q2: 1},
		{name: "uneven split", itemID: "102", q1: 3, q2: 7},
		{name: "cheap item many times", itemID: "103", q1: 13, q2: 29},
		{name: "fractional price", itemID: "202", q1: 2, q2: 5},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			ctx := context.Background()
			split, _ := newStoreBackedCarts()
			joined, _ := newStoreBackedCarts()

			_, err := split.AddItem(ctx, "u1", service.AddItemRequest{MenuItemID: testCase.itemID, Quantity: testCase.q1})
			require.NoError(t, err)
			a, err := split.AddItem(ctx, "u1", service.AddItemRequest{MenuItemID: testCase.itemID, Quantity: testCase.q2})
			require.NoError(t, err)

			b, err := joined.AddItem(ctx, "u1", service.AddItemRequest{MenuItemID: testCase.itemID, Quantity: testCase.q1 + testCase.q2})
			require.NoError(t, err)

			require.Len(t, a.Items, 1)
			assert.Equal(t, b.Items[0].Quantity, a.Items[0].Quantity)
			assert.Equal(t, b.Subtotal, a.Subtotal)
			assert.Equal(t, b.Tax, a.Tax)
			assert.Equal(t, b.Total, a.Total)
		})
	}
}

func TestCartInvariantsHoldAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	carts, repo := newStoreBackedCarts()
	ids := []string{"101", "102", "103", "201", "202"}
	rng := rand.New(rand.NewSource(7))

	for step := 0; step < 300; step++ {
		id := ids[rng.Intn(len(ids))]
		var err error
		switch rng.Intn(4) {
		case 0, 1:
			_, err = carts.AddItem(ctx, "u1", service.AddItemRequest{MenuItemID: id, Quantity: 1 + rng.Intn(4)})
			if err != nil {
				require.ErrorIs(t, err, service.ErrDifferentRestaurant, "step %d", step)
			}
		case 2:
			_, err = carts.UpdateItemQuantity(ctx, "u1", id, rng.Intn(5)-1)
			if err != nil {
				require.Equal(t, domain.KindNotFound, domain.KindOf(err), "step %d", step)
			}
		case 3:
			if rng.Intn(6) == 0 {
				_, err = carts.Clear(ctx, "u1")
			} else {
				_, err = carts.RemoveItem(ctx, "u1", id)
				if err != nil {
					require.ErrorIs(t, err, service.ErrCartNotFound, "step %d", step)
				}
				err = nil
			}
			require.NoError(t, err, "step %d", step)
		}

		stored, err := repo.FindCartByUserID(ctx, "u1")
		require.NoError(t, err)
		if stored == nil {
			continue
		}
		assertCartInvariants(t, stored, step)
	}
}

func assertCartInvariants(t *testing.T, cart *domain.Cart, step int) {
	t.Helper()
	seen := map[string]bool{}
	for _, item := range cart.Items {
		require.Positive(t, item.Quantity, "step %d", step)
		require.False(t, seen[item.MenuItemID], "duplicate %s at step %d", item.MenuItemID, step)
		seen[item.MenuItemID] = true
		require.Equal(t, catalogue[item.MenuItemID].RestaurantID, cart.Restaurant(), "step %d", step)
	}
	if len(cart.Items) == 0 {
		require.Nil(t, cart.RestaurantID, "step %d", step)
	}

	subtotal := pricing.Subtotal(cart.Items)
	require.Equal(t, pricing.Format(subtotal), cart.Subtotal, "step %d", step)

	// A cleared cart reports every total as zero; any later mutation prices it again.
	if cart.DeliveryFee == "0.00" {
		require.Empty(t, cart.Items, "step %d", step)
		require.Equal(t, "0.00", cart.Total, "step %d", step)
		return
	}
	want := pricing.DefaultRules().Compute(cart.Items)
	require.Equal(t, want.Tax, cart.Tax, "step %d", step)
	require.Equal(t, want.Total, cart.Total, "step %d", step)
}

func TestCartRestaurantExclusivity(t *testing.T) {
	ctx := context.Background()
	carts, repo := newStoreBackedCarts()

	_, err := carts.AddItem(ctx, "u1", service.AddItemRequest{MenuItemID: "101", Quantity: 2, SpecialInstructions: "no onions"})
	require.NoError(t, err)
	before, err := repo.FindCartByUserID(ctx, "u1")
	require.NoError(t, err)

	_, err = carts.AddItem(ctx, "u1", service.AddItemRequest{MenuItemID: "201", Quantity: 1})
	require.ErrorIs(t, err, service.ErrDifferentRestaurant)
	assert.Equal(t, domain.KindConflictDifferentRestaurant, domain.KindOf(err))

	after, err := repo.FindCartByUserID(ctx, "u1")
	require.NoError(t, err)
	if diff := cmp.Diff(before, after, decimalEqual, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("cart changed after rejected add (-before +after):\n%s", diff)
	}

	_, err = carts.Clear(ctx, "u1")
	require.NoError(t, err)
	cart, err := carts.AddItem(ctx, "u1", service.AddItemRequest{MenuItemID: "201", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "2", cart.Restaurant())
}

func TestCartConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	carts, repo := newStoreBackedCarts()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := carts.AddItem(ctx, "u1", service.AddItemRequest{MenuItemID: "102", Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := repo.FindCartByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers, cart.Items[0].Quantity)
	assert.Equal(t, "249.80", cart.Subtotal)
}
