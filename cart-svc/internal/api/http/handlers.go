package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/service"
)

type Handler struct {
	Carts       service.CartServiceInterface
	Coupons     service.CouponValidator
	Offers      service.OfferServiceInterface
	Restaurants service.RestaurantServiceInterface
	Menu        service.MenuServiceInterface
	Orders      service.OrderServiceInterface
	Limiter     *Limiter
	Log         logrus.FieldLogger
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/cart", RequireUser(h.getCart)).Methods("GET")
	r.HandleFunc("/api/cart", RequireUser(RateLimit(h.Limiter, h.clearCart))).Methods("DELETE")
	r.HandleFunc("/api/cart/add", RequireUser(RateLimit(h.Limiter, h.addToCart))).Methods("POST")
	r.HandleFunc("/api/cart/item/{menuItemId}", RequireUser(RateLimit(h.Limiter, h.updateCartItem))).Methods("PUT")
	r.HandleFunc("/api/cart/item/{menuItemId}", RequireUser(RateLimit(h.Limiter, h.removeCartItem))).Methods("DELETE")

	r.HandleFunc("/api/offers", h.getOffers).Methods("GET")
	r.HandleFunc("/api/offers", h.createOffer).Methods("POST")
	r.HandleFunc("/api/offers/validate", RateLimit(h.Limiter, h.validateCoupon)).Methods("POST")
	r.HandleFunc("/api/offers/{id}", h.updateOffer).Methods("PUT")
	r.HandleFunc("/api/offers/{id}", h.deleteOffer).Methods("DELETE")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants/cities", h.getCities).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/menu", h.getRestaurantMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/menu/{menuItemId}", h.getMenuItem).Methods("GET")

	r.HandleFunc("/api/orders", RequireUser(h.createOrder)).Methods("POST")
	r.HandleFunc("/api/orders", RequireUser(h.getOrders)).Methods("GET")
	r.HandleFunc("/api/orders/{id}", RequireUser(h.getOrder)).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", RequireUser(h.getOrderQRCode)).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondOK(w, http.StatusOK, "healthy", map[string]interface{}{
		"service":   "cart-svc",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type addToCartRequest struct {
	MenuItemID          domain.FlexID `json:"menuItemId" validate:"required"`
	Quantity            int           `json:"quantity" validate:"required"`
	SpecialInstructions string        `json:"specialInstructions" validate:"max=500"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.GetOrCreate(r.Context(), ContextUserID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Cart retrieved", cart)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	cart, err := h.Carts.AddItem(r.Context(), ContextUserID(r.Context()), service.AddItemRequest{
		MenuItemID:          string(req.MenuItemID),
		Quantity:            req.Quantity,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Item added to cart", cart)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	cart, err := h.Carts.UpdateItemQuantity(r.Context(), ContextUserID(r.Context()), mux.Vars(r)["menuItemId"], *req.Quantity)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Cart updated", cart)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.RemoveItem(r.Context(), ContextUserID(r.Context()), mux.Vars(r)["menuItemId"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Item removed from cart", cart)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Clear(r.Context(), ContextUserID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Cart cleared", cart)
}

type validateCouponRequest struct {
	Code         string           `json:"code" validate:"required"`
	OrderValue   *decimal.Decimal `json:"orderValue" validate:"required"`
	RestaurantID domain.FlexID    `json:"restaurantId"`
}

func (h *Handler) validateCoupon(w http.ResponseWriter, r *http.Request) {
	var req validateCouponRequest
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	quote, err := h.Coupons.Validate(r.Context(), service.CouponRequest{
		Code:         req.Code,
		OrderValue:   *req.OrderValue,
		RestaurantID: string(req.RestaurantID),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Coupon applied successfully", quote)
}
