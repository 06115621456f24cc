package model

import "time"

// Event names sent to the analytics collaborator.
const (
	EventAddToCart       = "add_to_cart"
	EventRemoveFromCart  = "remove_from_cart"
	EventViewCart        = "view_cart"
	EventCheckoutStarted = "checkout_started"
	EventPromoApplied    = "promo_applied"
)

// Event is the structured payload posted to the analytics sink. Delivery is
// advisory: failures are logged and never surfaced to the caller.
type Event struct {
	Name     string    `json:"name"`
	OwnerID  string    `json:"ownerId"`
	CourseID string    `json:"courseId,omitempty"`
	Title    string    `json:"title,omitempty"`
	Price    int64     `json:"price,omitempty"`
	Location string    `json:"location,omitempty"`
	SentAt   time.Time `json:"sentAt"`
}
