package tools

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/pkg/logger"
	"store-assistant-be/internal/repository/specification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders       []*entity.Order
	findErr      error
	cancelStatus string
	cancelErr    error
}

func (f *fakeOrderRepo) Create(_ context.Context, _ *entity.Order) error          { return nil }
func (f *fakeOrderRepo) CreateBulk(_ context.Context, _ []*entity.Order) error    { return nil }
func (f *fakeOrderRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Order, error) {
	return nil, constant.ErrOrderNotFound
}
func (f *fakeOrderRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.Order, error) {
	return f.orders, f.findErr
}
func (f *fakeOrderRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(f.orders)), nil
}
func (f *fakeOrderRepo) FindByCustomerEmail(_ context.Context, _ string) ([]*entity.Order, error) {
	return f.orders, f.findErr
}
func (f *fakeOrderRepo) CancelPending(_ context.Context, _, _ string) (string, error) {
	return f.cancelStatus, f.cancelErr
}

type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) PublishOrderCancelled(_ context.Context, email, orderID string) error {
	f.published = append(f.published, orderID)
	return f.err
}

func TestLookupOrders(t *testing.T) {
	repo := &fakeOrderRepo{orders: []*entity.Order{{OrderID: "ORD-1"}, {OrderID: "ORD-2"}}}
	d := NewDispatcher(repo, &fakePublisher{}, logger.NewNopLogger())

	orders, err := d.LookupOrders(context.Background(), "john@email.com")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestLookupOrdersStorageFaultIsTransient(t *testing.T) {
	repo := &fakeOrderRepo{findErr: errors.New("connection reset")}
	d := NewDispatcher(repo, &fakePublisher{}, logger.NewNopLogger())

	_, err := d.LookupOrders(context.Background(), "john@email.com")
	assert.ErrorIs(t, err, constant.ErrTransient)
}

func TestCancelOrderSuccessPublishesEvent(t *testing.T) {
	repo := &fakeOrderRepo{cancelStatus: "cancelled"}
	publisher := &fakePublisher{}
	d := NewDispatcher(repo, publisher, logger.NewNopLogger())

	result := d.CancelOrder(context.Background(), "john@email.com", "ORD-1")

	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "ORD-1")
	assert.Equal(t, []string{"ORD-1"}, publisher.published)
}

func TestCancelOrderNotFound(t *testing.T) {
	repo := &fakeOrderRepo{cancelErr: constant.ErrOrderNotFound}
	publisher := &fakePublisher{}
	d := NewDispatcher(repo, publisher, logger.NewNopLogger())

	result := d.CancelOrder(context.Background(), "john@email.com", "ORD-404")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "could not find")
	assert.Empty(t, publisher.published)
}

func TestCancelOrderInvalidStatus(t *testing.T) {
	repo := &fakeOrderRepo{
		cancelStatus: "shipped",
		cancelErr:    fmt.Errorf("%w: status is shipped", constant.ErrOrderNotCancellable),
	}
	d := NewDispatcher(repo, &fakePublisher{}, logger.NewNopLogger())

	result := d.CancelOrder(context.Background(), "john@email.com", "ORD-1")

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "shipped")
}

func TestCancelOrderStorageFault(t *testing.T) {
	repo := &fakeOrderRepo{cancelErr: errors.New("connection reset")}
	d := NewDispatcher(repo, &fakePublisher{}, logger.NewNopLogger())

	result := d.CancelOrder(context.Background(), "john@email.com", "ORD-1")

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

func TestCancelOrderPublishFailureDoesNotFlipOutcome(t *testing.T) {
	repo := &fakeOrderRepo{cancelStatus: "cancelled"}
	publisher := &fakePublisher{err: errors.New("bus closed")}
	d := NewDispatcher(repo, publisher, logger.NewNopLogger())

	result := d.CancelOrder(context.Background(), "john@email.com", "ORD-1")
	assert.True(t, result.Success)
}
