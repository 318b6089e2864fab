package dto

import "time"

// OrderCancelledMessage is the payload published on the order.cancelled
// topic after a successful cancellation.
type OrderCancelledMessage struct {
	OrderID       string    `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	OccurredAt    time.Time `json:"occurred_at"`
}
