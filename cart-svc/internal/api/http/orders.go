package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"foodhub/cart-svc/internal/service"
)

type placeOrderRequest struct {
	DeliveryAddress string `json:"deliveryAddress" validate:"required"`
	DeliveryCity    string `json:"deliveryCity" validate:"required"`
	DeliveryState   string `json:"deliveryState"`
	DeliveryZipCode string `json:"deliveryZipCode"`
	PaymentMethod   string `json:"paymentMethod"`
	SpecialRequests string `json:"specialRequests" validate:"max=500"`
	TransactionID   string `json:"transactionId"`
	CouponCode      string `json:"couponCode"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	order, err := h.Orders.Place(r.Context(), ContextUserID(r.Context()), service.PlaceOrderRequest{
		DeliveryAddress: req.DeliveryAddress,
		DeliveryCity:    req.DeliveryCity,
		DeliveryState:   req.DeliveryState,
		DeliveryZipCode: req.DeliveryZipCode,
		PaymentMethod:   req.PaymentMethod,
		SpecialRequests: req.SpecialRequests,
		TransactionID:   req.TransactionID,
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Order placed", order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context(), ContextUserID(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Orders retrieved", orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), ContextUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Order retrieved", order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Orders.QRCode(r.Context(), ContextUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if len(qr) == 0 {
		respondFail(w, http.StatusNotFound, "NOT_FOUND", "qr code not available")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(qr)
}
