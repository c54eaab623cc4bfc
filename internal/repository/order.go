package repository

import (
	"context"
	"fmt"

	"github.com/flicky/storefront/internal/model"
)

type OrderRepository interface {
	GetAll(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	Save(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	Update(ctx context.Context, id string, fn func(o *model.Order) error) (*model.Order, error)
}

type kvOrderRepo struct{ s *slots }

// GetAll returns orders newest first.
func (r *kvOrderRepo) GetAll(ctx context.Context) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	orders, err := loadList[model.Order](ctx, r.s, ordersKey)
	if err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return orders, nil
}

func (r *kvOrderRepo) GetByID(ctx context.Context, id string) (*model.Order, error) {
	orders, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, nil
}

// Create stores a copy of order at the head of the collection. An order id
// that is already taken yields ErrConflict.
func (r *kvOrderRepo) Create(ctx context.Context, order *model.Order) error {
	if order.ID == "" {
		return fmt.Errorf("create order: %w: id is required", model.ErrInvalid)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	orders, err := loadList[model.Order](ctx, r.s, ordersKey)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	for _, o := range orders {
		if o.ID == order.ID {
			return fmt.Errorf("create order %s: %w", order.ID, ErrConflict)
		}
	}
	orders = append([]model.Order{order.Clone()}, orders...)
	if err := r.s.write(ctx, ordersKey, orders); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// Save upserts a copy of order by id. An existing order keeps its place in
// the collection; a new one goes to the end.
func (r *kvOrderRepo) Save(ctx context.Context, order *model.Order) error {
	if order.ID == "" {
		return fmt.Errorf("save order: %w: id is required", model.ErrInvalid)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	orders, err := loadList[model.Order](ctx, r.s, ordersKey)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	orders = upsert(orders, order.Clone(), func(o model.Order) string { return o.ID })
	if err := r.s.write(ctx, ordersKey, orders); err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

// UpdateStatus overwrites the status field only. Unknown ids are ignored.
func (r *kvOrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	if _, err := r.Update(ctx, id, func(o *model.Order) error {
		o.Status = status
		return nil
	}); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// Update applies fn to the stored order while the Store is locked and writes
// the result. An error from fn is returned unchanged and nothing is written.
// Returns nil for an unknown id; the id itself cannot be changed.
func (r *kvOrderRepo) Update(ctx context.Context, id string, fn func(o *model.Order) error) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	orders, err := loadList[model.Order](ctx, r.s, ordersKey)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		updated := orders[i].Clone()
		if err := fn(&updated); err != nil {
			return nil, err
		}
		updated.ID = id
		orders[i] = updated
		if err := r.s.write(ctx, ordersKey, orders); err != nil {
			return nil, fmt.Errorf("update order: %w", err)
		}
		out := updated.Clone()
		return &out, nil
	}
	return nil, nil
}
