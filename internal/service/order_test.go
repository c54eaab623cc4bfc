package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
)

func seedOrders(t *testing.T, st *repository.Store) {
	t.Helper()
	ctx := context.Background()
	orders := []model.Order{
		{ID: "RAK-000000001", CustomerEmail: "meera@example.com", Total: decimal.NewFromInt(945), Status: model.OrderStatusDelivered},
		{ID: "RAK-000000002", CustomerEmail: "dev@example.com", Total: decimal.NewFromInt(2205), Status: model.OrderStatusPending},
		{ID: "RAK-000000003", CustomerEmail: "Meera@Example.com", Total: decimal.NewFromInt(100), Status: model.OrderStatusPending},
	}
	for i := range orders {
		require.NoError(t, st.Orders.Create(ctx, &orders[i]))
	}
}

func TestOrderService_ListByCustomer(t *testing.T) {
	st := newSeededStore(t)
	seedOrders(t, st)
	svc := NewOrderService(st.Orders)

	orders, err := svc.ListByCustomer(context.Background(), "MEERA@example.com")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "RAK-000000003", orders[0].ID)
	assert.Equal(t, "RAK-000000001", orders[1].ID)

	none, err := svc.ListByCustomer(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderService_AdvanceStatus(t *testing.T) {
	st := newSeededStore(t)
	seedOrders(t, st)
	svc := NewOrderService(st.Orders)
	ctx := context.Background()

	order, err := svc.AdvanceStatus(ctx, "RAK-000000002", model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, order.Status)

	stored, err := svc.Get(ctx, "RAK-000000002")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, stored.Status)
	assert.True(t, decimal.NewFromInt(2205).Equal(stored.Total))

	// Repeating the current status is harmless.
	_, err = svc.AdvanceStatus(ctx, "RAK-000000002", model.OrderStatusShipped)
	assert.NoError(t, err)
}

func TestOrderService_AdvanceStatusRejections(t *testing.T) {
	st := newSeededStore(t)
	seedOrders(t, st)
	svc := NewOrderService(st.Orders)
	ctx := context.Background()

	tests := []struct {
		name   string
		id     string
		status model.OrderStatus
		err    error
	}{
		{"backwards", "RAK-000000001", model.OrderStatusPending, ErrInvalidTransition},
		{"unknown status", "RAK-000000002", "cancelled", ErrInvalidTransition},
		{"unknown order", "RAK-404", model.OrderStatusShipped, ErrOrderNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AdvanceStatus(ctx, tt.id, tt.status)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	delivered, err := svc.Get(ctx, "RAK-000000001")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, delivered.Status)
}

func TestOrderService_Stats(t *testing.T) {
	st := newSeededStore(t)
	seedOrders(t, st)
	svc := NewOrderService(st.Orders)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Orders)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.True(t, decimal.NewFromInt(3250).Equal(stats.Revenue))
}

func TestOrderService_StatsEmpty(t *testing.T) {
	svc := NewOrderService(newSeededStore(t).Orders)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Orders)
	assert.True(t, stats.Revenue.IsZero())
}

func TestOrderService_ConcurrentAdvanceNeverMovesBackward(t *testing.T) {
	for i := 0; i < 20; i++ {
		st := newSeededStore(t)
		seedOrders(t, st)
		svc := NewOrderService(st.Orders)
		ctx := context.Background()

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for j, status := range []model.OrderStatus{model.OrderStatusShipped, model.OrderStatusDelivered} {
			wg.Add(1)
			go func(j int, status model.OrderStatus) {
				defer wg.Done()
				_, errs[j] = svc.AdvanceStatus(ctx, "RAK-000000002", status)
			}(j, status)
		}
		wg.Wait()

		assert.NoError(t, errs[1])
		if errs[0] != nil {
			assert.ErrorIs(t, errs[0], ErrInvalidTransition)
		}
		o, err := svc.Get(ctx, "RAK-000000002")
		require.NoError(t, err)
		assert.Equal(t, model.OrderStatusDelivered, o.Status)
	}
}
