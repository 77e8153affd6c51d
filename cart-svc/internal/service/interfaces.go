package service

import (
	"context"

	"foodhub/cart-svc/internal/domain"
)

// Repositories return (nil, nil) when the requested document does not exist.

type CartRepository interface {
	FindCartByUserID(ctx context.Context, userID string) (*domain.Cart, error)
	SaveCart(ctx context.Context, cart *domain.Cart) error
}

type MenuRepository interface {
	GetMenuItem(ctx context.Context, menuItemID string) (*domain.MenuItem, error)
	ListMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error)
	SaveMenuItem(ctx context.Context, item *domain.MenuItem) error
}

type RestaurantRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, restaurantID string) (*domain.Restaurant, error)
	SaveRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, restaurantID string) error
}

type OfferRepository interface {
	FindOfferByCode(ctx context.Context, code string) (*domain.Offer, error)
	GetOffer(ctx context.Context, offerID string) (*domain.Offer, error)
	ListOffers(ctx context.Context) ([]domain.Offer, error)
	SaveOffer(ctx context.Context, offer *domain.Offer) error
	DeleteOffer(ctx context.Context, offerID string) error
	IncrementOfferUsage(ctx context.Context, offerID string) error
}

type OrderRepository interface {
	SaveOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// RestaurantCache holds the full restaurant list for a bounded time.
type RestaurantCache interface {
	GetOrRefresh(ctx context.Context, load func(context.Context) ([]domain.Restaurant, error)) ([]domain.Restaurant, error)
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type RestaurantCatalog interface {
	All(ctx context.Context) ([]domain.Restaurant, error)
}

type MenuItemResolver interface {
	Resolve(ctx context.Context, menuItemID string) (*domain.MenuItem, error)
}

type CouponValidator interface {
	Validate(ctx context.Context, req CouponRequest) (*domain.CouponQuote, error)
}

type RedemptionRecorder interface {
	RecordRedemption(ctx context.Context, code string) error
}

type CartServiceInterface interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID string, req AddItemRequest) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, menuItemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, menuItemID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
}

type RestaurantServiceInterface interface {
	RestaurantCatalog
	List(ctx context.Context, filter RestaurantFilter) ([]domain.Restaurant, error)
	Cities(ctx context.Context) ([]string, error)
	Get(ctx context.Context, restaurantID string) (*domain.Restaurant, error)
	Create(ctx context.Context, rest *domain.Restaurant) error
	Update(ctx context.Context, rest *domain.Restaurant) error
	Delete(ctx context.Context, restaurantID string) error
}

type MenuServiceInterface interface {
	ListByRestaurant(ctx context.Context, restaurantID, category string) ([]domain.MenuItem, error)
	Get(ctx context.Context, menuItemID string) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
}

type OfferServiceInterface interface {
	RedemptionRecorder
	ListActive(ctx context.Context) ([]domain.Offer, error)
	Create(ctx context.Context, offer *domain.Offer) error
	Update(ctx context.Context, offerID string, patch OfferPatch) (*domain.Offer, error)
	Delete(ctx context.Context, offerID string) error
}

type OrderServiceInterface interface {
	Place(ctx context.Context, userID string, req PlaceOrderRequest) (*domain.Order, error)
	Get(ctx context.Context, userID, orderID string) (*domain.Order, error)
	List(ctx context.Context, userID string) ([]domain.Order, error)
	QRCode(ctx context.Context, userID, orderID string) ([]byte, error)
}

var (
	_ CartServiceInterface       = (*CartService)(nil)
	_ RestaurantServiceInterface = (*RestaurantService)(nil)
	_ MenuServiceInterface       = (*MenuService)(nil)
	_ OfferServiceInterface      = (*OfferService)(nil)
	_ OrderServiceInterface      = (*OrderService)(nil)
	_ MenuItemResolver           = (*MenuResolver)(nil)
	_ CouponValidator            = (*CouponService)(nil)
)
