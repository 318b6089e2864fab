// Package tools executes the validated transactional operations the
// dialogue core can take: order lookup and order cancellation.
package tools

import (
	"context"
	"errors"
	"fmt"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/internal/repository/contract"
	"store-assistant-be/pkg/dialogue/prompt"
)

// CancelResult is the outcome of one cancellation attempt. Message is
// always user-visible; failures are already mapped to catalog messages.
type CancelResult struct {
	Success bool
	Message string
}

// EventPublisher receives order lifecycle events after successful mutations.
type EventPublisher interface {
	PublishOrderCancelled(ctx context.Context, email, orderID string) error
}

type Dispatcher struct {
	orders    contract.OrderRepository
	publisher EventPublisher
	logger    logger.ILogger
}

func NewDispatcher(orders contract.OrderRepository, publisher EventPublisher, logger logger.ILogger) *Dispatcher {
	return &Dispatcher{
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// LookupOrders returns the customer's orders newest-first. No matches is an
// empty slice. Storage faults come back wrapped as ErrTransient.
func (d *Dispatcher) LookupOrders(ctx context.Context, email string) ([]*entity.Order, error) {
	orders, err := d.orders.FindByCustomerEmail(ctx, email)
	if err != nil {
		d.logger.Error("tools", "order lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: lookup orders: %v", constant.ErrTransient, err)
	}
	return orders, nil
}

// CancelOrder attempts one cancellation. The attempt is never retried here;
// a failed attempt requires the user to re-initiate the flow.
func (d *Dispatcher) CancelOrder(ctx context.Context, email, orderID string) CancelResult {
	status, err := d.orders.CancelPending(ctx, email, orderID)
	switch {
	case err == nil:
		if d.publisher != nil {
			if pubErr := d.publisher.PublishOrderCancelled(ctx, email, orderID); pubErr != nil {
				d.logger.Warn("tools", "order cancelled but event publish failed", map[string]interface{}{
					"order_id": orderID,
					"error":    pubErr.Error(),
				})
			}
		}
		return CancelResult{Success: true, Message: prompt.MsgCancelSuccess(orderID)}

	case errors.Is(err, constant.ErrOrderNotFound):
		return CancelResult{Success: false, Message: prompt.MsgCancelNotFound}

	case errors.Is(err, constant.ErrOrderNotCancellable):
		return CancelResult{Success: false, Message: prompt.MsgCancelInvalidStatus(status)}

	default:
		// Connectivity/storage fault: logged, generic message, no retry
		d.logger.Error("tools", "order cancellation failed", map[string]interface{}{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return CancelResult{Success: false, Message: prompt.MsgCancelError}
	}
}
