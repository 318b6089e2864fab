package mapper

import (
	"encoding/json"

	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/model"
)

type OrderMapper struct{}

func NewOrderMapper() *OrderMapper {
	return &OrderMapper{}
}

func (m *OrderMapper) ToEntity(o *model.Order) *entity.Order {
	if o == nil {
		return nil
	}
	var detail entity.OrderDetail
	// A row with malformed detail still maps; the items list stays empty
	_ = json.Unmarshal(o.OrderDetail, &detail)
	return &entity.Order{
		OrderID:       o.OrderID,
		Detail:        detail,
		TotalPrice:    o.TotalPrice,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func (m *OrderMapper) ToModel(o *entity.Order) *model.Order {
	if o == nil {
		return nil
	}
	detail, _ := json.Marshal(o.Detail)
	return &model.Order{
		OrderID:       o.OrderID,
		OrderDetail:   detail,
		TotalPrice:    o.TotalPrice,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
