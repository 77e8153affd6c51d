package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/pricing"
)

var (
	ErrCouponCodeRequired  = domain.Validation("coupon code is required")
	ErrOrderValueNegative  = domain.Validation("order value must not be negative")
	ErrCouponNotFound      = domain.NotFound("invalid or expired coupon code")
	ErrCouponInactive      = domain.Ineligible("coupon is expired or inactive")
	ErrCouponUsageLimit    = domain.Ineligible("coupon usage limit reached")
	ErrCouponMinOrderValue = domain.Ineligible("minimum order value required")
	ErrCouponRestaurant    = domain.Ineligible("coupon not valid for this restaurant")
)

var hundred = decimal.NewFromInt(100)

type CouponRequest struct {
	Code         string
	OrderValue   decimal.Decimal
	RestaurantID string
}

// CouponService validates coupons without touching redemption counters.
type CouponService struct {
	offers OfferRepository
	now    func() time.Time
}

func NewCouponService(offers OfferRepository) *CouponService {
	return &CouponService{offers: offers, now: time.Now}
}

// WithClock replaces the time source used for the validity window.
func (s *CouponService) WithClock(now func() time.Time) *CouponService {
	s.now = now
	return s
}

// Validate runs the eligibility checks in a fixed order and stops at the first
// failure, so the reported reason is deterministic.
func (s *CouponService) Validate(ctx context.Context, req CouponRequest) (*domain.CouponQuote, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, ErrCouponCodeRequired
	}
	if req.OrderValue.IsNegative() {
		return nil, ErrOrderValueNegative
	}

	offer, err := s.offers.FindOfferByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrCouponNotFound
	}

	if !offer.LiveAt(s.now()) {
		return nil, ErrCouponInactive
	}
	if offer.UsageLimit != nil && *offer.UsageLimit > 0 && offer.UsedCount >= *offer.UsageLimit {
		return nil, ErrCouponUsageLimit
	}
	if isSet(offer.MinOrderValue) && req.OrderValue.LessThan(*offer.MinOrderValue) {
		return nil, &domain.Error{
			Kind:    ErrCouponMinOrderValue.Kind,
			Message: ErrCouponMinOrderValue.Message,
			Err:     fmt.Errorf("order value %s is below minimum %s", pricing.Format(req.OrderValue), pricing.Format(*offer.MinOrderValue)),
		}
	}
	if offer.ApplicableFor == domain.ScopeSpecificRestaurant && offer.RestaurantID != "" && offer.RestaurantID != req.RestaurantID {
		return nil, ErrCouponRestaurant
	}

	return &domain.CouponQuote{
		Code:          offer.Code,
		Title:         offer.Title,
		Description:   offer.Description,
		DiscountType:  offer.DiscountType,
		DiscountValue: offer.DiscountValue,
		Discount:      pricing.Format(Discount(offer, req.OrderValue)),
	}, nil
}

// Discount computes the unrounded discount of offer on orderValue. Only
// percentage discounts honour MaxDiscount; every other type yields
// DiscountValue as is.
func Discount(offer *domain.Offer, orderValue decimal.Decimal) decimal.Decimal {
	if offer.DiscountType != domain.DiscountPercentage {
		return offer.DiscountValue
	}
	discount := orderValue.Mul(offer.DiscountValue).Div(hundred)
	if isSet(offer.MaxDiscount) && discount.GreaterThan(*offer.MaxDiscount) {
		return *offer.MaxDiscount
	}
	return discount
}

// isSet treats a missing or zero amount as "no constraint".
func isSet(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}
