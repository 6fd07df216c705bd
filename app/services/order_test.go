package services_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/zaika/app/models"
	"github.com/shashiranjanraj/zaika/app/repositories"
	"github.com/shashiranjanraj/zaika/app/services"
	"github.com/shashiranjanraj/zaika/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(t *testing.T) *services.OrderService {
	t.Helper()
	return services.NewOrderService(repositories.NewOrderRepository(newTestDB(t)))
}

func TestPlaceOrder(t *testing.T) {
	svc := newOrderService(t)
	ctx := context.Background()

	o, err := svc.Place(ctx, 1, services.OrderInput{
		Items:       itemsFixture(),
		TotalAmount: 694,
		Address:     addressFixture("India"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPlaced, o.Status)
	assert.Equal(t, uint(1), o.UserID)
	assert.Nil(t, o.RazorpayOrderID, "direct orders carry no gateway reference")
}

func TestPlaceOrderRejectsEmptyItems(t *testing.T) {
	svc := newOrderService(t)

	_, err := svc.Place(context.Background(), 1, services.OrderInput{
		TotalAmount: 100,
		Address:     addressFixture("India"),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusOf(err))
}

func TestPlaceOrderRejectsNonPositiveTotal(t *testing.T) {
	svc := newOrderService(t)

	_, err := svc.Place(context.Background(), 1, services.OrderInput{
		Items:   itemsFixture(),
		Address: addressFixture("India"),
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusOf(err))
}

func TestMineNewestFirst(t *testing.T) {
	svc := newOrderService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Place(ctx, 1, services.OrderInput{
			Items:       itemsFixture(),
			TotalAmount: float64(100 + i),
			Address:     addressFixture("India"),
		})
		require.NoError(t, err)
	}
	// Another user's order must not appear.
	_, err := svc.Place(ctx, 2, services.OrderInput{
		Items:       itemsFixture(),
		TotalAmount: 50,
		Address:     addressFixture("India"),
	})
	require.NoError(t, err)

	orders, err := svc.Mine(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for _, o := range orders {
		assert.Equal(t, uint(1), o.UserID)
	}
	assert.GreaterOrEqual(t, orders[0].ID, orders[1].ID, "newest first")
}

func TestClearOrders(t *testing.T) {
	svc := newOrderService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Place(ctx, 1, services.OrderInput{
			Items:       itemsFixture(),
			TotalAmount: 100,
			Address:     addressFixture("India"),
		})
		require.NoError(t, err)
	}

	count, err := svc.Clear(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	orders, err := svc.Mine(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestClearOrdersEmptyIsNotAnError(t *testing.T) {
	svc := newOrderService(t)

	count, err := svc.Clear(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
