package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "foodhub/cart-svc/internal/api/http"
	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/pricing"
	"foodhub/cart-svc/internal/service"
	"foodhub/cart-svc/internal/storage"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func setupTestServer(t *testing.T) (*httptest.Server, *storage.Repository) {
	t.Helper()
	ctx := context.Background()
	log, _ := test.NewNullLogger()

	repo := storage.NewRepository(storage.NewMemoryStore())
	_, err := storage.SeedOffers(ctx, repo, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)

	require.NoError(t, repo.SaveRestaurant(ctx, &domain.Restaurant{RestaurantID: "1", Name: "Burger Barn", City: "Mumbai", Rating: 4.4}))
	require.NoError(t, repo.SaveRestaurant(ctx, &domain.Restaurant{
		RestaurantID: "2",
		Name:         "Sushi Spot",
		City:         "Pune",
		Rating:       4.8,
		Menu: map[string][]domain.EmbeddedMenuItem{
			"Rolls": {{ID: "201", Name: "California Roll", Price: decimal.NewFromInt(349)}},
		},
	}))
	require.NoError(t, repo.SaveMenuItem(ctx, &domain.MenuItem{MenuItemID: "101", RestaurantID: "1", Name: "Classic Burger", Price: decimal.NewFromInt(299), IsAvailable: true}))

	offers := service.NewOfferService(repo)
	publisher := service.DirectPublisher{Consumer: service.NewRedemptionConsumer(nil, offers, log)}
	handler := buildHandler(repo, storage.NewMemoryRestaurantCache(time.Minute), offers, publisher, pricing.DefaultRules(), "http://localhost:8080", log)

	server := httptest.NewServer(httpapi.NewRouter(handler, log))
	t.Cleanup(server.Close)
	return server, repo
}

func call(t *testing.T, server *httptest.Server, method, path, body string) (int, apiResponse) {
	t.Helper()
	req, err := http.NewRequest(method, server.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(httpapi.UserIDHeader, "u1")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCheckoutFlow(t *testing.T) {
	server, repo := setupTestServer(t)

	status, resp := call(t, server, http.MethodPost, "/api/cart/add", `{"menuItemId":"101","quantity":2}`)
	require.Equal(t, http.StatusOK, status, resp.Message)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal(resp.Data, &cart))
	assert.Equal(t, "598.00", cart.Subtotal)
	assert.Equal(t, "29.90", cart.Tax)
	assert.Equal(t, "50.00", cart.DeliveryFee)
	assert.Equal(t, "677.90", cart.Total)

	status, resp = call(t, server, http.MethodPost, "/api/cart/add", `{"menuItemId":201,"quantity":1}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT_DIFFERENT_RESTAURANT", resp.Code)

	status, resp = call(t, server, http.MethodPost, "/api/offers/validate", `{"code":"foodhub50","orderValue":200}`)
	require.Equal(t, http.StatusOK, status, resp.Message)
	assert.Contains(t, string(resp.Data), `"discount":"100.00"`)

	status, resp = call(t, server, http.MethodPost, "/api/offers/validate", `{"code":"SAVE100","orderValue":250}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "minimum order value required", resp.Message)

	status, resp = call(t, server, http.MethodPost, "/api/orders", `{"deliveryAddress":"1 Marine Drive","deliveryCity":"Mumbai","couponCode":"FOODHUB50"}`)
	require.Equal(t, http.StatusCreated, status, resp.Message)
	var order domain.Order
	require.NoError(t, json.Unmarshal(resp.Data, &order))
	assert.Equal(t, "150.00", order.Discount)
	assert.Equal(t, "527.90", order.Total)
	assert.NotEmpty(t, order.QRCode)

	offer, err := repo.FindOfferByCode(context.Background(), "FOODHUB50")
	require.NoError(t, err)
	assert.Equal(t, 1, offer.UsedCount)

	status, resp = call(t, server, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(resp.Data, &cart))
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.RestaurantID)
	assert.Equal(t, "0.00", cart.Total)

	status, resp = call(t, server, http.MethodPost, "/api/cart/add", `{"menuItemId":201,"quantity":1}`)
	require.Equal(t, http.StatusOK, status, resp.Message)
	require.NoError(t, json.Unmarshal(resp.Data, &cart))
	assert.Equal(t, "2", cart.Restaurant())
	assert.Equal(t, "349.00", cart.Subtotal)
}

func TestCartEditing(t *testing.T) {
	server, _ := setupTestServer(t)

	_, _ = call(t, server, http.MethodPost, "/api/cart/add", `{"menuItemId":"101","quantity":2}`)

	status, resp := call(t, server, http.MethodPut, "/api/cart/item/101", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, status)
	var cart domain.Cart
	require.NoError(t, json.Unmarshal(resp.Data, &cart))
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.RestaurantID)
	assert.Equal(t, "0.00", cart.Subtotal)

	status, resp = call(t, server, http.MethodPut, "/api/cart/item/101", `{"quantity":3}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "item not found in cart", resp.Message)

	status, _ = call(t, server, http.MethodDelete, "/api/cart", "")
	assert.Equal(t, http.StatusOK, status)

	status, resp = call(t, server, http.MethodPost, "/api/orders", `{"deliveryAddress":"x","deliveryCity":"y"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "cart is empty", resp.Message)
}

func TestCatalogRoutes(t *testing.T) {
	server, _ := setupTestServer(t)

	status, resp := call(t, server, http.MethodGet, "/api/restaurants", "")
	require.Equal(t, http.StatusOK, status)
	var list []domain.Restaurant
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].RestaurantID)

	status, resp = call(t, server, http.MethodPost, "/api/restaurants", `{"name":"Taco Town","city":"Goa","rating":4.1}`)
	require.Equal(t, http.StatusCreated, status, resp.Message)

	status, resp = call(t, server, http.MethodGet, "/api/restaurants/cities", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `["Goa","Mumbai","Pune"]`, string(resp.Data))

	status, resp = call(t, server, http.MethodGet, "/api/menu/201", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), "California Roll")

	status, resp = call(t, server, http.MethodGet, "/api/offers", "")
	require.Equal(t, http.StatusOK, status)
	var offers []domain.Offer
	require.NoError(t, json.Unmarshal(resp.Data, &offers))
	assert.Len(t, offers, 4)
}
