package specification

import "gorm.io/gorm"

// ByCustomerEmail filters orders belonging to a customer.
type ByCustomerEmail struct {
	Email string
}

func (s ByCustomerEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_email = ?", s.Email)
}

// ByOrderID filters a single order by its public id.
type ByOrderID struct {
	OrderID string
}

func (s ByOrderID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderID)
}

// ByStatus filters orders by status, case-insensitively.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(status) = LOWER(?)", s.Status)
}

// NewestFirst orders results by creation time, most recent first.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
