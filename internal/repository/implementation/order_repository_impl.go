package implementation

import (
	"context"
	"errors"
	"fmt"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/mapper"
	"store-assistant-be/internal/model"
	"store-assistant-be/internal/repository/contract"
	"store-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type OrderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrderMapper
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &OrderRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrderMapper(),
	}
}

func (r *OrderRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entity.Order) error {
	m := r.mapper.ToModel(order)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*order = *r.mapper.ToEntity(m)
	return nil
}

func (r *OrderRepositoryImpl) CreateBulk(ctx context.Context, orders []*entity.Order) error {
	models := make([]*model.Order, len(orders))
	for i, o := range orders {
		models[i] = r.mapper.ToModel(o)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*orders[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *OrderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var m model.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	var models []*model.Order
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Order, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *OrderRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *OrderRepositoryImpl) FindByCustomerEmail(ctx context.Context, email string) ([]*entity.Order, error) {
	return r.FindAll(ctx,
		specification.ByCustomerEmail{Email: email},
		specification.NewestFirst{},
	)
}

func (r *OrderRepositoryImpl) CancelPending(ctx context.Context, email, orderID string) (string, error) {
	// Single guarded UPDATE: the status check and the write share one
	// statement, so concurrent attempts on the same pending order resolve
	// to exactly one success.
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("customer_email = ? AND order_id = ? AND LOWER(status) = ?", email, orderID, constant.OrderStatusPending).
		Update("status", constant.OrderStatusCancelled)
	if res.Error != nil {
		return "", fmt.Errorf("cancel order: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return constant.OrderStatusCancelled, nil
	}

	// The CAS missed. Distinguish "no such order" from "wrong status".
	existing, err := r.FindOne(ctx,
		specification.ByCustomerEmail{Email: email},
		specification.ByOrderID{OrderID: orderID},
	)
	if err != nil {
		return "", fmt.Errorf("cancel order status check: %w", err)
	}
	if existing == nil {
		return "", constant.ErrOrderNotFound
	}
	return existing.Status, constant.ErrOrderNotCancellable
}
