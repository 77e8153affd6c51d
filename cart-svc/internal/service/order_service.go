package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/pricing"
)

var (
	ErrOrderNotFound        = domain.NotFound("order not found")
	ErrCartEmpty            = domain.Validation("cart is empty")
	ErrDeliveryAddressEmpty = domain.Validation("delivery address and city are required")
)

const (
	DefaultPaymentMethod  = "online"
	estimatedDeliveryTime = 45 * time.Minute
)

type PlaceOrderRequest struct {
	DeliveryAddress string
	DeliveryCity    string
	DeliveryState   string
	DeliveryZipCode string
	PaymentMethod   string
	SpecialRequests string
	TransactionID   string
	CouponCode      string
}

type cartClearer interface {
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
}

// OrderService turns a user's cart into an order and empties the cart.
type OrderService struct {
	orders    OrderRepository
	carts     CartRepository
	cartSvc   cartClearer
	coupons   CouponValidator
	qr        QRGenerator
	publisher EventPublisher
	rules     pricing.Rules
	log       logrus.FieldLogger
	now       func() time.Time
	random    func(n int) int
}

func NewOrderService(
	orders OrderRepository,
	carts CartRepository,
	cartSvc cartClearer,
	coupons CouponValidator,
	qr QRGenerator,
	publisher EventPublisher,
	rules pricing.Rules,
	log logrus.FieldLogger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		cartSvc:   cartSvc,
		coupons:   coupons,
		qr:        qr,
		publisher: publisher,
		rules:     rules,
		log:       log,
		now:       time.Now,
		random:    rand.Intn,
	}
}

func (s *OrderService) Place(ctx context.Context, userID string, req PlaceOrderRequest) (*domain.Order, error) {
	if strings.TrimSpace(req.DeliveryAddress) == "" || strings.TrimSpace(req.DeliveryCity) == "" {
		return nil, ErrDeliveryAddressEmpty
	}

	cart, err := s.carts.FindCartByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := pricing.Subtotal(cart.Items)
	tax := subtotal.Mul(s.rules.TaxRate)
	discount := decimal.Zero

	var couponCode string
	if req.CouponCode != "" && s.coupons != nil {
		quote, err := s.coupons.Validate(ctx, CouponRequest{
			Code:         req.CouponCode,
			OrderValue:   subtotal,
			RestaurantID: cart.Restaurant(),
		})
		if err != nil {
			return nil, err
		}
		if discount, err = pricing.Parse(quote.Discount); err != nil {
			return nil, err
		}
		couponCode = quote.Code
	}

	total := subtotal.Add(tax).Add(s.rules.DeliveryFee).Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	now := s.now().UTC()
	order := &domain.Order{
		OrderID:               uuid.NewString(),
		OrderNumber:           s.orderNumber(now),
		UserID:                userID,
		RestaurantID:          cart.Restaurant(),
		Status:                domain.OrderStatusConfirmed,
		PaymentStatus:         domain.PaymentStatusPending,
		PaymentMethod:         req.PaymentMethod,
		TransactionID:         req.TransactionID,
		Items:                 orderItems(cart.Items),
		Subtotal:              pricing.Format(subtotal),
		Tax:                   pricing.Format(tax),
		DeliveryFee:           pricing.Format(s.rules.DeliveryFee),
		Discount:              pricing.Format(discount),
		Total:                 pricing.Format(total),
		CouponCode:            couponCode,
		DeliveryAddress:       req.DeliveryAddress,
		DeliveryCity:          req.DeliveryCity,
		DeliveryState:         req.DeliveryState,
		DeliveryZipCode:       req.DeliveryZipCode,
		SpecialRequests:       req.SpecialRequests,
		EstimatedDeliveryTime: now.Add(estimatedDeliveryTime),
		CreatedAt:             now,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = DefaultPaymentMethod
	}
	if order.TransactionID != "" {
		order.PaymentStatus = domain.PaymentStatusCompleted
	}

	if s.qr != nil {
		if qr, err := s.qr.Generate(order.OrderID); err == nil {
			order.QRCode = qr
		} else {
			s.log.WithError(err).WithField("order_id", order.OrderID).Warn("qr code generation failed")
		}
	}

	if err := s.orders.SaveOrder(ctx, order); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		err := s.publisher.Publish(ctx, domain.Event{
			Type:         domain.EventOrderPlaced,
			UserID:       userID,
			CartID:       cart.CartID,
			OrderID:      order.OrderID,
			RestaurantID: order.RestaurantID,
			CouponCode:   couponCode,
			Total:        order.Total,
			Timestamp:    now,
		})
		if err != nil {
			s.log.WithError(err).WithField("order_id", order.OrderID).Warn("publish order event failed")
		}
	}

	if _, err := s.cartSvc.Clear(ctx, userID); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("clear cart after order failed")
	}
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// QRCode returns the stored tracking code, regenerating and saving it when the
// order has none.
func (s *OrderService) QRCode(ctx context.Context, userID, orderID string) ([]byte, error) {
	order, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if len(order.QRCode) > 0 || s.qr == nil {
		return order.QRCode, nil
	}

	qr, err := s.qr.Generate(order.OrderID)
	if err != nil {
		return nil, err
	}
	order.QRCode = qr
	if err := s.orders.SaveOrder(ctx, order); err != nil {
		s.log.WithError(err).WithField("order_id", order.OrderID).Warn("save regenerated qr code failed")
	}
	return qr, nil
}

// orderNumber is "ORD" followed by the last 8 digits of the millisecond
// timestamp and 3 random digits.
func (s *OrderService) orderNumber(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("ORD%s%03d", millis, s.random(1000))
}

func orderItems(items []domain.CartItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for i, item := range items {
		out = append(out, domain.OrderItem{
			ItemID:              i + 1,
			MenuItemID:          item.MenuItemID,
			MenuItemName:        item.Name,
			Quantity:            item.Quantity,
			Price:               item.Price,
			ItemTotal:           pricing.Format(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))),
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return out
}
