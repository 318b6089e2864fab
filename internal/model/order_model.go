package model

import (
	"time"

	"gorm.io/datatypes"
)

type Order struct {
	OrderID       string         `gorm:"column:order_id;primaryKey"`
	OrderDetail   datatypes.JSON `gorm:"column:order_detail;type:jsonb"`
	TotalPrice    float64        `gorm:"column:total_price;type:numeric(10,2);not null"`
	CustomerName  string         `gorm:"column:customer_name;type:text"`
	CustomerEmail string         `gorm:"column:customer_email;type:text;not null;index"`
	Status        string         `gorm:"column:status;type:text;not null;default:pending"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
