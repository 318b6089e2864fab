package entity

import (
	"time"
)

// OrderItem is a single line item inside an order.
type OrderItem struct {
	Model    string  `json:"model"`
	Grade    string  `json:"grade"`
	Scale    string  `json:"scale"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderDetail holds the structured line items of an order.
type OrderDetail struct {
	Items []OrderItem `json:"items"`
}

type Order struct {
	OrderID       string
	Detail        OrderDetail
	TotalPrice    float64
	CustomerName  string
	CustomerEmail string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
