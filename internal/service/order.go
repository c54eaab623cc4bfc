package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Stats struct {
	Revenue       decimal.Decimal
	Orders        int
	PendingOrders int
}

type OrderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// List returns every order, newest first.
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	email = normalizeEmail(email)
	out := make([]model.Order, 0)
	for _, o := range orders {
		if normalizeEmail(o.CustomerEmail) == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdvanceStatus moves an order forward: pending, shipped, delivered.
// Setting the current status again is accepted and changes nothing.
func (s *OrderService) AdvanceStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}
	order, err := s.orderRepo.Update(ctx, id, func(o *model.Order) error {
		if o.Status != status && !o.Status.CanAdvanceTo(status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, status)
		}
		o.Status = status
		return nil
	})
	switch {
	case errors.Is(err, ErrInvalidTransition):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("update order status: %w", err)
	case order == nil:
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) Stats(ctx context.Context) (*Stats, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := summarize(orders)
	return &stats, nil
}

func summarize(orders []model.Order) Stats {
	stats := Stats{Revenue: decimal.Zero, Orders: len(orders)}
	for _, o := range orders {
		stats.Revenue = stats.Revenue.Add(o.Total)
		if o.Status == model.OrderStatusPending {
			stats.PendingOrders++
		}
	}
	return stats
}
