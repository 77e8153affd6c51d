package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/service"
)

type offerRequest struct {
	Code          string              `json:"code" validate:"required,max=32"`
	Title         string              `json:"title" validate:"max=200"`
	Description   string              `json:"description"`
	Image         string              `json:"image"`
	DiscountType  domain.DiscountType `json:"discountType" validate:"required,oneof=percentage flat free_item"`
	DiscountValue decimal.Decimal     `json:"discountValue"`
	MaxDiscount   *decimal.Decimal    `json:"maxDiscount"`
	MinOrderValue *decimal.Decimal    `json:"minOrderValue"`
	UsageLimit    *int                `json:"usageLimit" validate:"omitempty,gte=0"`
	ApplicableFor string              `json:"applicableFor" validate:"omitempty,oneof=all specific_restaurant"`
	RestaurantID  domain.FlexID       `json:"restaurantId"`
	ValidFrom     *time.Time          `json:"validFrom"`
	ValidUntil    *time.Time          `json:"validUntil"`
}

func (req offerRequest) offer() *domain.Offer {
	return &domain.Offer{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MaxDiscount:   req.MaxDiscount,
		MinOrderValue: req.MinOrderValue,
		UsageLimit:    req.UsageLimit,
		ApplicableFor: req.ApplicableFor,
		RestaurantID:  string(req.RestaurantID),
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
	}
}

type offerPatchRequest struct {
	Code          *string              `json:"code" validate:"omitempty,min=1,max=32"`
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	Image         *string              `json:"image"`
	DiscountType  *domain.DiscountType `json:"discountType" validate:"omitempty,oneof=percentage flat free_item"`
	DiscountValue *decimal.Decimal     `json:"discountValue"`
	MaxDiscount   *decimal.Decimal     `json:"maxDiscount"`
	MinOrderValue *decimal.Decimal     `json:"minOrderValue"`
	UsageLimit    *int                 `json:"usageLimit" validate:"omitempty,gte=0"`
	ApplicableFor *string              `json:"applicableFor" validate:"omitempty,oneof=all specific_restaurant"`
	RestaurantID  *domain.FlexID       `json:"restaurantId"`
	IsActive      *bool                `json:"isActive"`
	ValidFrom     *time.Time           `json:"validFrom"`
	ValidUntil    *time.Time           `json:"validUntil"`
}

func (req offerPatchRequest) patch() service.OfferPatch {
	patch := service.OfferPatch{
		Code:          req.Code,
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MaxDiscount:   req.MaxDiscount,
		MinOrderValue: req.MinOrderValue,
		UsageLimit:    req.UsageLimit,
		ApplicableFor: req.ApplicableFor,
		IsActive:      req.IsActive,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
	}
	if req.RestaurantID != nil {
		id := string(*req.RestaurantID)
		patch.RestaurantID = &id
	}
	return patch
}

func (h *Handler) getOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.Offers.ListActive(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Offers retrieved", offers)
}

func (h *Handler) createOffer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	offer := req.offer()
	if err := h.Offers.Create(r.Context(), offer); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Offer created", offer)
}

func (h *Handler) updateOffer(w http.ResponseWriter, r *http.Request) {
	var req offerPatchRequest
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	offer, err := h.Offers.Update(r.Context(), mux.Vars(r)["id"], req.patch())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Offer updated", offer)
}

func (h *Handler) deleteOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.Offers.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Offer deleted", nil)
}
