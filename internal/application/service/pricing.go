package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/dokanlab/pos-terminal-api/internal/domain/entity"
)

// Pricing is pure arithmetic: same inputs always produce same outputs, no
// side effects. All amounts are integer cents.

// VariantUnitPrice applies a variant's price modifier to the base price.
// Never negative.
func VariantUnitPrice(basePrice, priceModifier int64) int64 {
	price := basePrice + priceModifier
	if price < 0 {
		return 0
	}
	return price
}

// PriceRange returns the min and max unit price over all variants. An empty
// variant list yields (basePrice, basePrice). Callers show a "from" price
// when min != max.
func PriceRange(basePrice int64, variants []entity.ProductVariant) (min, max int64) {
	if len(variants) == 0 {
		return basePrice, basePrice
	}
	min = VariantUnitPrice(basePrice, variants[0].PriceModifier)
	max = min
	for _, v := range variants[1:] {
		price := VariantUnitPrice(basePrice, v.PriceModifier)
		if price < min {
			min = price
		}
		if price > max {
			max = price
		}
	}
	return min, max
}

// maxParseableAmount bounds cashier-typed amounts. One trillion currency
// units is far beyond any sale; anything above it, like anything invalid,
// parses to 0 instead of overflowing the cents conversion.
const maxParseableAmount = 1e12

// ParseAmount parses a cashier-typed amount into cents. Blank, non-numeric,
// negative or absurdly large input yields 0.
func ParseAmount(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f > maxParseableAmount || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(math.Round(f * 100))
}

// ComputeSummary derives the cart summary. The discount is the parsed input
// clamped to [0, subtotal]; total = subtotal - discount.
func ComputeSummary(items []entity.CartLineItem, discountInput string) entity.CartSummary {
	var summary entity.CartSummary
	for _, item := range items {
		summary.Subtotal += item.LineTotal
		summary.ItemCount += item.Quantity
	}

	discount := ParseAmount(discountInput)
	if discount > summary.Subtotal {
		discount = summary.Subtotal
	}
	summary.Discount = discount
	summary.Total = summary.Subtotal - discount
	return summary
}

// ParseCashReceived parses the raw cash-received input into cents.
func ParseCashReceived(raw string) int64 {
	return ParseAmount(raw)
}

// Change is the amount handed back to the customer. Never negative.
func Change(received, total int64) int64 {
	if received > total {
		return received - total
	}
	return 0
}

// AmountDue is the shortfall still owed. Never negative. At most one of
// Change and AmountDue is non-zero for the same inputs.
func AmountDue(received, total int64) int64 {
	if total > received {
		return total - received
	}
	return 0
}
