package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	CartID       string     `json:"cartId"`
	UserID       string     `json:"userId"`
	RestaurantID *string    `json:"restaurantId"`
	Items        []CartItem `json:"items"`
	Subtotal     string     `json:"subtotal"`
	Tax          string     `json:"tax"`
	DeliveryFee  string     `json:"deliveryFee"`
	Total        string     `json:"total"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Restaurant returns the id the cart is pinned to, or "" when it is not pinned.
func (c *Cart) Restaurant() string {
	if c.RestaurantID == nil {
		return ""
	}
	return *c.RestaurantID
}

func (c *Cart) ItemIndex(menuItemID string) int {
	for i, item := range c.Items {
		if item.MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}

type CartItem struct {
	MenuItemID          string          `json:"menuItemId"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	Image               string          `json:"image,omitempty"`
}

type MenuItem struct {
	MenuItemID   string          `json:"menuItemId"`
	RestaurantID string          `json:"restaurantId"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category,omitempty"`
	Image        string          `json:"image,omitempty"`
	IsVeg        bool            `json:"isVeg"`
	IsAvailable  bool            `json:"isAvailable"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type Restaurant struct {
	RestaurantID string                        `json:"restaurantId"`
	Name         string                        `json:"name"`
	Cuisine      string                        `json:"cuisine,omitempty"`
	Description  string                        `json:"description,omitempty"`
	Address      string                        `json:"address,omitempty"`
	City         string                        `json:"city,omitempty"`
	State        string                        `json:"state,omitempty"`
	Rating       float64                       `json:"rating"`
	DeliveryTime int                           `json:"deliveryTime,omitempty"`
	Image        string                        `json:"image,omitempty"`
	Menu         map[string][]EmbeddedMenuItem `json:"menu,omitempty"`
	CreatedAt    time.Time                     `json:"createdAt"`
	UpdatedAt    time.Time                     `json:"updatedAt"`
}

// EmbeddedMenuItem is an entry of a restaurant's nested menu (category -> items).
// Older documents carry the identifier under "id", newer ones under "menuItemId".
type EmbeddedMenuItem struct {
	ID          FlexID          `json:"id,omitempty"`
	MenuItemID  FlexID          `json:"menuItemId,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	IsVeg       bool            `json:"isVeg"`
}

func (e EmbeddedMenuItem) Matches(menuItemID string) bool {
	return (e.ID != "" && string(e.ID) == menuItemID) ||
		(e.MenuItemID != "" && string(e.MenuItemID) == menuItemID)
}

// FlexID accepts both JSON strings and JSON numbers.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
	DiscountFreeItem   DiscountType = "free_item"
)

func (d DiscountType) Valid() bool {
	switch d {
	case DiscountPercentage, DiscountFlat, DiscountFreeItem:
		return true
	}
	return false
}

const (
	ScopeAll                = "all"
	ScopeSpecificRestaurant = "specific_restaurant"
)

type Offer struct {
	OfferID       string           `json:"offerId"`
	Code          string           `json:"code"`
	Title         string           `json:"title,omitempty"`
	Description   string           `json:"description,omitempty"`
	Image         string           `json:"image,omitempty"`
	DiscountType  DiscountType     `json:"discountType"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue,omitempty"`
	UsageLimit    *int             `json:"usageLimit,omitempty"`
	UsedCount     int              `json:"usedCount"`
	ApplicableFor string           `json:"applicableFor,omitempty"`
	RestaurantID  string           `json:"restaurantId,omitempty"`
	IsActive      bool             `json:"isActive"`
	ValidFrom     *time.Time       `json:"validFrom,omitempty"`
	ValidUntil    *time.Time       `json:"validUntil,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     *time.Time       `json:"updatedAt,omitempty"`
}

// LiveAt reports whether the offer is switched on and now lies inside its window.
// A missing bound leaves that side of the window open.
func (o *Offer) LiveAt(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if o.ValidFrom != nil && o.ValidFrom.After(now) {
		return false
	}
	if o.ValidUntil != nil && o.ValidUntil.Before(now) {
		return false
	}
	return true
}

type CouponQuote struct {
	Code          string          `json:"code"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	Discount      string          `json:"discount"`
}

const (
	OrderStatusConfirmed = "confirmed"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

type Order struct {
	OrderID               string      `json:"orderId"`
	OrderNumber           string      `json:"orderNumber"`
	UserID                string      `json:"userId"`
	RestaurantID          string      `json:"restaurantId"`
	Status                string      `json:"status"`
	PaymentStatus         string      `json:"paymentStatus"`
	PaymentMethod         string      `json:"paymentMethod"`
	TransactionID         string      `json:"transactionId,omitempty"`
	Items                 []OrderItem `json:"items"`
	Subtotal              string      `json:"subtotal"`
	Tax                   string      `json:"tax"`
	DeliveryFee           string      `json:"deliveryFee"`
	Discount              string      `json:"discount"`
	Total                 string      `json:"total"`
	CouponCode            string      `json:"couponCode,omitempty"`
	DeliveryAddress       string      `json:"deliveryAddress"`
	DeliveryCity          string      `json:"deliveryCity"`
	DeliveryState         string      `json:"deliveryState"`
	DeliveryZipCode       string      `json:"deliveryZipCode"`
	SpecialRequests       string      `json:"specialRequests,omitempty"`
	QRCode                []byte      `json:"qrCode,omitempty"`
	EstimatedDeliveryTime time.Time   `json:"estimatedDeliveryTime"`
	CreatedAt             time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ItemID              int             `json:"itemId"`
	MenuItemID          string          `json:"menuItemId"`
	MenuItemName        string          `json:"menuItemName"`
	Quantity            int             `json:"quantity"`
	Price               decimal.Decimal `json:"price"`
	ItemTotal           string          `json:"itemTotal"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
}

const (
	EventCartUpdated = "cart_updated"
	EventCartCleared = "cart_cleared"
	EventOrderPlaced = "order_placed"
)

type Event struct {
	Type         string    `json:"type"`
	UserID       string    `json:"userId"`
	CartID       string    `json:"cartId,omitempty"`
	OrderID      string    `json:"orderId,omitempty"`
	RestaurantID string    `json:"restaurantId,omitempty"`
	CouponCode   string    `json:"couponCode,omitempty"`
	Total        string    `json:"total,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
