package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodhub/cart-svc/internal/domain"
)

var (
	ErrOfferNotFound         = domain.NotFound("offer not found")
	ErrOfferCodeTaken        = domain.Validation("offer code already exists")
	ErrOfferDiscountType     = domain.Validation("discount type must be percentage, flat or free_item")
	ErrOfferNegativeValue    = domain.Validation("discount values must not be negative")
	ErrOfferScopeRestaurant  = domain.Validation("restaurant id is required for a restaurant specific offer")
	ErrOfferApplicableFor    = domain.Validation("applicable for must be all or specific_restaurant")
	ErrOfferWindowOutOfOrder = domain.Validation("valid from must not be after valid until")
)

// OfferPatch carries the fields of an offer update. Nil fields are left as
// they are.
type OfferPatch struct {
	Code          *string
	Title         *string
	Description   *string
	Image         *string
	DiscountType  *domain.DiscountType
	DiscountValue *decimal.Decimal
	MaxDiscount   *decimal.Decimal
	MinOrderValue *decimal.Decimal
	UsageLimit    *int
	ApplicableFor *string
	RestaurantID  *string
	IsActive      *bool
	ValidFrom     *time.Time
	ValidUntil    *time.Time
}

type OfferService struct {
	offers OfferRepository
	now    func() time.Time
}

func NewOfferService(offers OfferRepository) *OfferService {
	return &OfferService{offers: offers, now: time.Now}
}

// ListActive returns the offers that are live right now, newest first.
func (s *OfferService) ListActive(ctx context.Context) ([]domain.Offer, error) {
	all, err := s.offers.ListOffers(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	active := make([]domain.Offer, 0, len(all))
	for i := range all {
		if all[i].LiveAt(now) {
			active = append(active, all[i])
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
	return active, nil
}

func (s *OfferService) Create(ctx context.Context, offer *domain.Offer) error {
	offer.Code = strings.ToUpper(strings.TrimSpace(offer.Code))
	if offer.Code == "" {
		return ErrCouponCodeRequired
	}
	if offer.ApplicableFor == "" {
		offer.ApplicableFor = domain.ScopeAll
	}
	if err := validateOffer(offer); err != nil {
		return err
	}

	existing, err := s.offers.FindOfferByCode(ctx, offer.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrOfferCodeTaken
	}

	offer.OfferID = uuid.NewString()
	offer.IsActive = true
	offer.UsedCount = 0
	offer.CreatedAt = s.now().UTC()
	offer.UpdatedAt = nil
	return s.offers.SaveOffer(ctx, offer)
}

func (s *OfferService) Update(ctx context.Context, offerID string, patch OfferPatch) (*domain.Offer, error) {
	offer, err := s.offers.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}

	previousCode := offer.Code
	patch.applyTo(offer)
	offer.Code = strings.ToUpper(strings.TrimSpace(offer.Code))
	if offer.Code == "" {
		return nil, ErrCouponCodeRequired
	}
	if err := validateOffer(offer); err != nil {
		return nil, err
	}

	if offer.Code != previousCode {
		clash, err := s.offers.FindOfferByCode(ctx, offer.Code)
		if err != nil {
			return nil, err
		}
		if clash != nil && clash.OfferID != offer.OfferID {
			return nil, ErrOfferCodeTaken
		}
	}

	updatedAt := s.now().UTC()
	offer.UpdatedAt = &updatedAt
	if err := s.offers.SaveOffer(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *OfferService) Delete(ctx context.Context, offerID string) error {
	offer, err := s.offers.GetOffer(ctx, offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		return ErrOfferNotFound
	}
	return s.offers.DeleteOffer(ctx, offerID)
}

// RecordRedemption bumps usedCount of the offer with the given code. The
// increment happens atomically in the store.
func (s *OfferService) RecordRedemption(ctx context.Context, code string) error {
	offer, err := s.offers.FindOfferByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}
	if offer == nil {
		return ErrCouponNotFound
	}
	return s.offers.IncrementOfferUsage(ctx, offer.OfferID)
}

func validateOffer(offer *domain.Offer) error {
	if !offer.DiscountType.Valid() {
		return ErrOfferDiscountType
	}
	if offer.DiscountValue.IsNegative() ||
		(offer.MaxDiscount != nil && offer.MaxDiscount.IsNegative()) ||
		(offer.MinOrderValue != nil && offer.MinOrderValue.IsNegative()) ||
		(offer.UsageLimit != nil && *offer.UsageLimit < 0) {
		return ErrOfferNegativeValue
	}
	switch offer.ApplicableFor {
	case domain.ScopeAll:
	case domain.ScopeSpecificRestaurant:
		if offer.RestaurantID == "" {
			return ErrOfferScopeRestaurant
		}
	default:
		return ErrOfferApplicableFor
	}
	if offer.ValidFrom != nil && offer.ValidUntil != nil && offer.ValidFrom.After(*offer.ValidUntil) {
		return ErrOfferWindowOutOfOrder
	}
	return nil
}

func (p OfferPatch) applyTo(offer *domain.Offer) {
	if p.Code != nil {
		offer.Code = *p.Code
	}
	if p.Title != nil {
		offer.Title = *p.Title
	}
	if p.Description != nil {
		offer.Description = *p.Description
	}
	if p.Image != nil {
		offer.Image = *p.Image
	}
	if p.DiscountType != nil {
		offer.DiscountType = *p.DiscountType
	}
	if p.DiscountValue != nil {
		offer.DiscountValue = *p.DiscountValue
	}
	if p.MaxDiscount != nil {
		offer.MaxDiscount = p.MaxDiscount
	}
	if p.MinOrderValue != nil {
		offer.MinOrderValue = p.MinOrderValue
	}
	if p.UsageLimit != nil {
		offer.UsageLimit = p.UsageLimit
	}
	if p.ApplicableFor != nil {
		offer.ApplicableFor = *p.ApplicableFor
	}
	if p.RestaurantID != nil {
		offer.RestaurantID = *p.RestaurantID
	}
	if p.IsActive != nil {
		offer.IsActive = *p.IsActive
	}
	if p.ValidFrom != nil {
		offer.ValidFrom = p.ValidFrom
	}
	if p.ValidUntil != nil {
		offer.ValidUntil = p.ValidUntil
	}
}
