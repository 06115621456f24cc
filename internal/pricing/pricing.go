// Package pricing computes final course prices in cents from the base price,
// the sale configuration, and an optionally applied promo code. All functions
// are pure; invalid or missing inputs mean "no discount".
package pricing

import (
	"math"

	"github.com/ImmanuelNashville/Gospel-Culture-sub000/internal/model"
)

// SalePrice applies a percentage discount to a price in cents.
//
// Discounted prices are floored to the whole dollar, not the cent: 2400 cents
// at 42% off is 24 * 0.58 = 13.92, floored to $13 = 1300 cents. This coarse
// rounding favors the buyer and matches what the site displays; prices shown
// must equal prices charged, so keep it exact.
func SalePrice(priceCents int64, active bool, percentOff int) int64 {
	if !active || percentOff <= 0 || priceCents <= 0 {
		return priceCents
	}
	dollars := float64(priceCents) / 100
	discounted := dollars * (1 - float64(percentOff)/100)
	return int64(math.Floor(discounted)) * 100
}

// PromoPrice applies a promo code to a price in cents. A nil promo, a promo
// without a code, or a promo whose AllowedItemIDs excludes itemID leaves the
// price unchanged.
func PromoPrice(priceCents int64, itemID string, promo *model.PromoCode) int64 {
	if promo == nil {
		return priceCents
	}
	if len(promo.AllowedItemIDs) > 0 && !promo.Allows(itemID) {
		return priceCents
	}
	return SalePrice(priceCents, promo.Code != "", promo.PercentOff)
}

// AdjustedPrice composes the sale and promo discounts for one course.
//
// The two passes run sequentially, each floored to the dollar on its own, so
// discounts compound multiplicatively: a 30% sale followed by a 20% promo is
// 44% of the base price, not 50% off. A per-course sale override, when
// present and active, supersedes the global sale for that course.
func AdjustedPrice(priceCents int64, itemID string, sale model.SaleConfig, promo *model.PromoCode) int64 {
	active := sale.Active
	percentOff := sale.PercentOff
	if ov, ok := sale.Overrides[itemID]; ok {
		active = ov.Active || active
		if ov.PercentOff != 0 {
			percentOff = ov.PercentOff
		}
	}
	salePrice := SalePrice(priceCents, active, percentOff)
	return PromoPrice(salePrice, itemID, promo)
}
