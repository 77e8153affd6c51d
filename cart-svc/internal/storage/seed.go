package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"foodhub/cart-svc/internal/domain"
)

// DefaultOffers are the launch coupons, valid for a year from now.
func DefaultOffers(now time.Time) []domain.Offer {
	amount := func(v int64) *decimal.Decimal {
		d := decimal.NewFromInt(v)
		return &d
	}
	until := now.AddDate(1, 0, 0)

	offers := []domain.Offer{
		{
			OfferID:       "offer-foodhub50",
			Code:          "FOODHUB50",
			Title:         "50% off on your order",
			Description:   "Get 50% off up to 150 on orders above 200",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(50),
			MaxDiscount:   amount(150),
			MinOrderValue: amount(200),
		},
		{
			OfferID:       "offer-save100",
			Code:          "SAVE100",
			Title:         "Flat 100 off",
			Description:   "Flat 100 off on orders above 300",
			DiscountType:  domain.DiscountFlat,
			DiscountValue: decimal.NewFromInt(100),
			MinOrderValue: amount(300),
		},
		{
			OfferID:       "offer-sushi30",
			Code:          "SUSHI30",
			Title:         "30% off on sushi",
			Description:   "Get 30% off up to 200 on orders above 500",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(30),
			MaxDiscount:   amount(200),
			MinOrderValue: amount(500),
		},
		{
			OfferID:       "offer-freedrink",
			Code:          "FREEDRINK",
			Title:         "Free drink",
			Description:   "A free beverage on orders above 500",
			DiscountType:  domain.DiscountFreeItem,
			DiscountValue: decimal.Zero,
			MinOrderValue: amount(500),
		},
	}
	for i := range offers {
		offers[i].ApplicableFor = domain.ScopeAll
		offers[i].IsActive = true
		offers[i].ValidFrom = &now
		offers[i].ValidUntil = &until
		offers[i].CreatedAt = now
	}
	return offers
}

// SeedOffers stores the default offers whose code is not taken yet.
func SeedOffers(ctx context.Context, repo *Repository, now time.Time) (int, error) {
	seeded := 0
	for _, offer := range DefaultOffers(now) {
		existing, err := repo.FindOfferByCode(ctx, offer.Code)
		if err != nil {
			return seeded, err
		}
		if existing != nil {
			continue
		}
		offer := offer
		if err := repo.SaveOffer(ctx, &offer); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
