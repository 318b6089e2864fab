package contract

import (
	"context"

	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/repository/specification"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateBulk(ctx context.Context, orders []*entity.Order) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Order, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindByCustomerEmail returns the customer's orders newest-first.
	// No matches yields an empty slice, not an error.
	FindByCustomerEmail(ctx context.Context, email string) ([]*entity.Order, error)

	// CancelPending atomically transitions a pending order to cancelled and
	// stamps updated_at. The status check and write are guarded by a single
	// UPDATE, so two concurrent attempts on the same order resolve to exactly
	// one success. Returns the order's current status alongside
	// constant.ErrOrderNotFound or constant.ErrOrderNotCancellable on the two
	// business failures; any storage fault comes back wrapped.
	CancelPending(ctx context.Context, email, orderID string) (string, error)
}
