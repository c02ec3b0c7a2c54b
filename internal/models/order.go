package models

import "time"

// OrderStatus is the lifecycle state of an order. Orders start out pending
// and move to paid or cancelled; both are terminal.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a line item within an order. Name and Price are snapshots
// taken from the catalog at order-creation time; later catalog changes must
// not affect them.
type OrderItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Price at the time of order
}

// CustomerInfo holds the shipping and contact details supplied at checkout.
type CustomerInfo struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Address   string `json:"address" validate:"required,max=255"`
	City      string `json:"city" validate:"required,max=100"`
	Country   string `json:"country" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=50"`
}

// Order is an immutable record of a purchase. Except for Status, no field
// changes after creation.
type Order struct {
	ID            string       `json:"id"`
	CreatedAt     time.Time    `json:"date"`
	Items         []OrderItem  `json:"items"`
	Total         float64      `json:"total"`
	Status        OrderStatus  `json:"status"`
	PaymentMethod string       `json:"paymentMethod,omitempty"`
	CustomerInfo  CustomerInfo `json:"customerInfo"`
}
