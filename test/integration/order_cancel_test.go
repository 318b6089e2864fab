package integration

import (
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"store-assistant-be/internal/constant"
	"store-assistant-be/internal/entity"
	"store-assistant-be/internal/repository/implementation"
	"store-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepositoryIntegration(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	repo := implementation.NewOrderRepository(gormDB)
	ctx := context.Background()

	newOrder := func(status string) *entity.Order {
		return &entity.Order{
			OrderID:       "ORD-IT-" + uuid.NewString()[:8],
			Detail:        entity.OrderDetail{Items: []entity.OrderItem{{Model: "Zaku II", Grade: "High Grade", Scale: "1/144", Quantity: 1, Price: 25.00}}},
			TotalPrice:    25.00,
			CustomerName:  "Integration Test",
			CustomerEmail: "it-" + uuid.NewString()[:8] + "@example.com",
			Status:        status,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
	}

	t.Run("cancel pending order", func(t *testing.T) {
		order := newOrder("pending")
		require.NoError(t, repo.Create(ctx, order))

		status, err := repo.CancelPending(ctx, order.CustomerEmail, order.OrderID)
		assert.NoError(t, err)
		assert.Equal(t, "cancelled", status)
	})

	t.Run("cancel shipped order is rejected", func(t *testing.T) {
		order := newOrder("shipped")
		require.NoError(t, repo.Create(ctx, order))

		status, err := repo.CancelPending(ctx, order.CustomerEmail, order.OrderID)
		assert.ErrorIs(t, err, constant.ErrOrderNotCancellable)
		assert.Equal(t, "shipped", status)
	})

	t.Run("cancel unknown order", func(t *testing.T) {
		_, err := repo.CancelPending(ctx, "nobody@example.com", "ORD-DOESNOTEXIST")
		assert.ErrorIs(t, err, constant.ErrOrderNotFound)
	})

	t.Run("concurrent cancels resolve to one success", func(t *testing.T) {
		order := newOrder("pending")
		require.NoError(t, repo.Create(ctx, order))

		const attempts = 8
		var wg sync.WaitGroup
		results := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, results[i] = repo.CancelPending(ctx, order.CustomerEmail, order.OrderID)
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range results {
			if err == nil {
				successes++
			} else {
				assert.True(t, errors.Is(err, constant.ErrOrderNotCancellable))
			}
		}
		assert.Equal(t, 1, successes)
	})

	t.Run("lookup is newest first", func(t *testing.T) {
		email := "it-order-" + uuid.NewString()[:8] + "@example.com"
		older := newOrder("shipped")
		older.CustomerEmail = email
		older.CreatedAt = time.Now().AddDate(0, 0, -5)
		newer := newOrder("pending")
		newer.CustomerEmail = email
		require.NoError(t, repo.CreateBulk(ctx, []*entity.Order{older, newer}))

		orders, err := repo.FindByCustomerEmail(ctx, email)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, newer.OrderID, orders[0].OrderID)
		assert.Equal(t, older.OrderID, orders[1].OrderID)
	})
}
