package model

import "time"

// Order represents an entry in the orders table. An order is created at
// checkout from the cart's adjusted total and finalized by the payment
// webhook.
type Order struct {
	OrderID     int64      `json:"orderid"`
	UserID      string     `json:"userid"`
	OrderStatus string     `json:"orderstatus"`
	TotalPrice  int64      `json:"totalprice"`
	PromoCode   string     `json:"promocode,omitempty"`
	OrderDate   *time.Time `json:"orderdate,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// OrderItem is a row in the orderitems table, snapshotting the adjusted price
// each course was sold at.
type OrderItem struct {
	OrderItemID     int64  `json:"orderitemid"`
	OrderID         int64  `json:"orderid"`
	CourseID        string `json:"courseid"`
	Title           string `json:"title"`
	PriceAtPurchase int64  `json:"priceatpurchase"`
}

// Payment tracks the hosted-checkout transaction for an order.
type Payment struct {
	PaymentID       int64      `json:"payment_id"`
	OrderID         int64      `json:"order_id"`
	AmountPaid      int64      `json:"amount_paid"`
	PaymentStatus   string     `json:"payment_status"`
	PaymentProvider string     `json:"payment_provider"`
	ProviderRef     string     `json:"provider_ref"`
	ProviderPayload []byte     `json:"-"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}

// Entitlement is a row in customer_courses: a course the user owns, plus
// their video progress for the periodic sync.
type Entitlement struct {
	UserID          string     `json:"userid"`
	CourseID        string     `json:"courseid"`
	ProgressSeconds int64      `json:"progressSeconds"`
	GrantedAt       *time.Time `json:"granted_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}
