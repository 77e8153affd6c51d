package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/service"
)

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.RestaurantFilter{
		Cuisine: q.Get("cuisine"),
		City:    q.Get("city"),
		Search:  q.Get("search"),
		Sort:    q.Get("sort"),
	}
	if filter.City == "" {
		filter.City = q.Get("location")
	}
	if raw := q.Get("minRating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			h.respondError(w, r, domain.Validation("minRating must be a number"))
			return
		}
		filter.MinRating = rating
	}

	restaurants, err := h.Restaurants.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Restaurants retrieved", restaurants)
}

func (h *Handler) getCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Restaurants.Cities(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Cities retrieved", cities)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Restaurants.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Restaurant retrieved", rest)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := decode(w, r, &rest); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.Restaurants.Create(r.Context(), &rest); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Restaurant created", rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := decode(w, r, &rest); err != nil {
		h.respondError(w, r, err)
		return
	}
	rest.RestaurantID = mux.Vars(r)["id"]
	if err := h.Restaurants.Update(r.Context(), &rest); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Restaurant updated", rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := h.Restaurants.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Restaurant deleted", nil)
}

func (h *Handler) getRestaurantMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Menu.ListByRestaurant(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("category"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Menu retrieved", items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := decode(w, r, &item); err != nil {
		h.respondError(w, r, err)
		return
	}
	item.RestaurantID = mux.Vars(r)["id"]
	if err := h.Menu.Create(r.Context(), &item); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Menu item created", item)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Menu.Get(r.Context(), mux.Vars(r)["menuItemId"])
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Menu item retrieved", item)
}
