package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/pricing"
)

var (
	ErrCartNotFound        = domain.NotFound("cart not found")
	ErrItemNotInCart       = domain.NotFound("item not found in cart")
	ErrMenuItemRequired    = domain.Validation("menu item and quantity are required")
	ErrQuantityNotPositive = domain.Validation("quantity must be a positive integer")
	ErrDifferentRestaurant = &domain.Error{
		Kind:    domain.KindConflictDifferentRestaurant,
		Message: "cannot add items from different restaurants, clear cart first",
	}
)

type AddItemRequest struct {
	MenuItemID          string
	Quantity            int
	SpecialInstructions string
}

// CartService keeps exactly one cart per user and its totals consistent with
// its items. Mutations for the same user are serialised within the process;
// writers in other processes can still overwrite each other.
type CartService struct {
	carts     CartRepository
	resolver  MenuItemResolver
	publisher EventPublisher
	rules     pricing.Rules
	log       logrus.FieldLogger
	locks     *keyedMutex
	now       func() time.Time
}

func NewCartService(carts CartRepository, resolver MenuItemResolver, publisher EventPublisher, rules pricing.Rules, log logrus.FieldLogger) *CartService {
	return &CartService{
		carts:     carts,
		resolver:  resolver,
		publisher: publisher,
		rules:     rules,
		log:       log,
		locks:     newKeyedMutex(),
		now:       time.Now,
	}
}

func (s *CartService) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.carts.FindCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = s.newCart(userID)
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID string, req AddItemRequest) (*domain.Cart, error) {
	if req.MenuItemID == "" || req.Quantity == 0 {
		return nil, ErrMenuItemRequired
	}
	if req.Quantity < 0 {
		return nil, ErrQuantityNotPositive
	}

	menuItem, err := s.resolver.Resolve(ctx, req.MenuItemID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.carts.FindCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = s.newCart(userID)
	}

	if len(cart.Items) > 0 && cart.Restaurant() != "" && cart.Restaurant() != menuItem.RestaurantID {
		return nil, ErrDifferentRestaurant
	}
	restaurantID := menuItem.RestaurantID
	cart.RestaurantID = &restaurantID

	if i := cart.ItemIndex(req.MenuItemID); i >= 0 {
		cart.Items[i].Quantity += req.Quantity
		if req.SpecialInstructions != "" {
			cart.Items[i].SpecialInstructions = req.SpecialInstructions
		}
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			MenuItemID:          req.MenuItemID,
			Name:                menuItem.Name,
			Price:               menuItem.Price,
			Quantity:            req.Quantity,
			SpecialInstructions: req.SpecialInstructions,
			Image:               menuItem.Image,
		})
	}

	return s.recomputeAndSave(ctx, cart, domain.EventCartUpdated)
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, menuItemID string, quantity int) (*domain.Cart, error) {
	if menuItemID == "" {
		return nil, ErrMenuItemRequired
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.carts.FindCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	i := cart.ItemIndex(menuItemID)
	if i < 0 {
		return nil, ErrItemNotInCart
	}
	if quantity <= 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}
	if len(cart.Items) == 0 {
		cart.RestaurantID = nil
	}

	return s.recomputeAndSave(ctx, cart, domain.EventCartUpdated)
}

// RemoveItem drops the line item if present. Removing an absent item still
// recomputes and persists the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, menuItemID string) (*domain.Cart, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.carts.FindCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	kept := make([]domain.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.MenuItemID != menuItemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	if len(cart.Items) == 0 {
		cart.RestaurantID = nil
	}

	return s.recomputeAndSave(ctx, cart, domain.EventCartUpdated)
}

// Clear empties the cart in place and zeroes every total, delivery fee
// included. It returns (nil, nil) when the user has no cart.
func (s *CartService) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	cart, err := s.carts.FindCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}

	cart.Items = []domain.CartItem{}
	cart.RestaurantID = nil
	pricing.Zero(cart)
	cart.UpdatedAt = s.now().UTC()

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventCartCleared, cart)
	return cart, nil
}

func (s *CartService) recomputeAndSave(ctx context.Context, cart *domain.Cart, eventType string) (*domain.Cart, error) {
	s.rules.Apply(cart)
	cart.UpdatedAt = s.now().UTC()

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	s.publish(ctx, eventType, cart)
	return cart, nil
}

func (s *CartService) newCart(userID string) *domain.Cart {
	now := s.now().UTC()
	cart := &domain.Cart{
		CartID:    uuid.NewString(),
		UserID:    userID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	pricing.Zero(cart)
	return cart
}

func (s *CartService) publish(ctx context.Context, eventType string, cart *domain.Cart) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, domain.Event{
		Type:         eventType,
		UserID:       cart.UserID,
		CartID:       cart.CartID,
		RestaurantID: cart.Restaurant(),
		Total:        cart.Total,
		Timestamp:    s.now().UTC(),
	})
	if err != nil {
		s.log.WithError(err).WithField("user_id", cart.UserID).Warn("publish cart event failed")
	}
}
