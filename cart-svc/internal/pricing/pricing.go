// Package pricing derives cart totals from line items.
//
// All amounts are decimal and rendered with exactly two fraction digits,
// rounding half away from zero.
package pricing

import (
	"github.com/shopspring/decimal"

	"foodhub/cart-svc/internal/domain"
)

var (
	DefaultTaxRate     = decimal.RequireFromString("0.05")
	DefaultDeliveryFee = decimal.NewFromInt(50)

	zero = Format(decimal.Zero)
)

type Rules struct {
	TaxRate     decimal.Decimal
	DeliveryFee decimal.Decimal
}

func DefaultRules() Rules {
	return Rules{TaxRate: DefaultTaxRate, DeliveryFee: DefaultDeliveryFee}
}

type Totals struct {
	Subtotal    string
	Tax         string
	DeliveryFee string
	Total       string
}

// Subtotal is the sum of price*quantity over all items.
func Subtotal(items []domain.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Compute applies the pricing rule. The delivery fee is charged even for an
// empty item list.
func (r Rules) Compute(items []domain.CartItem) Totals {
	subtotal := Subtotal(items)
	tax := subtotal.Mul(r.TaxRate)
	total := subtotal.Add(tax).Add(r.DeliveryFee)
	return Totals{
		Subtotal:    Format(subtotal),
		Tax:         Format(tax),
		DeliveryFee: Format(r.DeliveryFee),
		Total:       Format(total),
	}
}

// Apply recomputes and stores the totals on cart.
func (r Rules) Apply(cart *domain.Cart) {
	t := r.Compute(cart.Items)
	cart.Subtotal = t.Subtotal
	cart.Tax = t.Tax
	cart.DeliveryFee = t.DeliveryFee
	cart.Total = t.Total
}

// Zero sets every total on cart to "0.00", delivery fee included.
func Zero(cart *domain.Cart) {
	cart.Subtotal = zero
	cart.Tax = zero
	cart.DeliveryFee = zero
	cart.Total = zero
}

func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Parse reads a two-digit amount previously produced by Format. Empty input is zero.
func Parse(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
