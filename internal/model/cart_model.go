package model

// CartLineItem is one course currently in the cart, with its base price
// snapshot in cents. The persisted cart blob is the sequence of these.
type CartLineItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CreatorName string `json:"creatorName"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Slug        string `json:"slug"`
}

// PromoCode is the result of a successful promo validation. It lives in
// memory for the cart session and is never persisted with the cart blob.
type PromoCode struct {
	Code           string   `json:"code"`
	PercentOff     int      `json:"percentOff"`
	AllowedItemIDs []string `json:"allowedItemIds,omitempty"`
}

// Allows reports whether the promo applies to the given item. A promo with no
// AllowedItemIDs applies to everything.
func (p *PromoCode) Allows(itemID string) bool {
	if p == nil {
		return false
	}
	if len(p.AllowedItemIDs) == 0 {
		return true
	}
	for _, id := range p.AllowedItemIDs {
		if id == itemID {
			return true
		}
	}
	return false
}

// SaleOverride is a per-course override of the site-wide sale.
type SaleOverride struct {
	Active     bool
	PercentOff int
}

// SaleConfig is the site-wide sale state plus per-course overrides. It is
// configured out-of-band and passed explicitly into pricing; nothing reads it
// ambiently. An active override supersedes the global sale for its course.
type SaleConfig struct {
	Active     bool
	PercentOff int
	Overrides  map[string]SaleOverride
}

// CartLine is a priced line item as the API exposes it.
type CartLine struct {
	CartLineItem
	AdjustedPrice int64 `json:"adjustedPrice"`
}

// CartResponse is returned when calling GET /cart.
type CartResponse struct {
	Items    []CartLine `json:"items"`
	Subtotal int64      `json:"subtotal"`
	Total    int64      `json:"total"`
	Promo    *PromoCode `json:"promo,omitempty"`
}
