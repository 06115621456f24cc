package model

import "time"

// Course represents an entry in the courses table
type Course struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	CreatorName string     `json:"creatorName"`
	Price       int64      `json:"price"`
	ImageURL    string     `json:"imageUrl"`
	Slug        string     `json:"slug"`
	VideoID     string     `json:"videoId,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// PricedCourse is a course with its sale-adjusted display price, as the
// catalog API exposes it. DisplayPrice equals Price when no sale applies.
type PricedCourse struct {
	Course
	DisplayPrice int64 `json:"displayPrice"`
	OnSale       bool  `json:"onSale"`
}

// LineItem converts a catalog course into a cart line item, snapshotting the
// base price.
func (c Course) LineItem() CartLineItem {
	return CartLineItem{
		ID:          c.ID,
		Title:       c.Title,
		CreatorName: c.CreatorName,
		Price:       c.Price,
		ImageURL:    c.ImageURL,
		Slug:        c.Slug,
	}
}
