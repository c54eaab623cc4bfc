package repository

import (
	"context"
	"fmt"

	"github.com/flicky/storefront/internal/model"
)

type ProductRepository interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Save(ctx context.Context, product *model.Product) error
	SaveDetails(ctx context.Context, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, productID string, review model.Review) (*model.Product, error)
}

type kvProductRepo struct{ s *slots }

func (r *kvProductRepo) GetAll(ctx context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	products, err := loadSeeded(ctx, r.s, productsKey, DefaultProducts)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	return products, nil
}

func (r *kvProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}

func (r *kvProductRepo) Save(ctx context.Context, product *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	products, err := loadSeeded(ctx, r.s, productsKey, DefaultProducts)
	if err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	products = upsert(products, product.Clone(), func(p model.Product) string { return p.ID })
	if err := r.s.write(ctx, productsKey, products); err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// SaveDetails upserts product like Save but keeps whatever reviews are stored
// under its id; the reviews on product are ignored. It returns the record as
// stored.
func (r *kvProductRepo) SaveDetails(ctx context.Context, product *model.Product) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	products, err := loadSeeded(ctx, r.s, productsKey, DefaultProducts)
	if err != nil {
		return nil, fmt.Errorf("save product details: %w", err)
	}
	stored := product.Clone()
	stored.Reviews = nil
	for i := range products {
		if products[i].ID == product.ID {
			stored.Reviews = products[i].Reviews
			break
		}
	}
	products = upsert(products, stored, func(p model.Product) string { return p.ID })
	if err := r.s.write(ctx, productsKey, products); err != nil {
		return nil, fmt.Errorf("save product details: %w", err)
	}
	out := stored.Clone()
	return &out, nil
}

func (r *kvProductRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	products, err := loadSeeded(ctx, r.s, productsKey, DefaultProducts)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	kept, removed := without(products, func(p model.Product) bool { return p.ID == id })
	if !removed {
		return nil
	}
	if err := r.s.write(ctx, productsKey, kept); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// AddReview puts review at the head of the product's reviews. It returns nil
// when the product does not exist.
func (r *kvProductRepo) AddReview(ctx context.Context, productID string, review model.Review) (*model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	products, err := loadSeeded(ctx, r.s, productsKey, DefaultProducts)
	if err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}
	for i := range products {
		if products[i].ID != productID {
			continue
		}
		products[i].Reviews = append([]model.Review{review}, products[i].Reviews...)
		if err := r.s.write(ctx, productsKey, products); err != nil {
			return nil, fmt.Errorf("add review: %w", err)
		}
		updated := products[i].Clone()
		return &updated, nil
	}
	return nil, nil
}

// upsert replaces the record with the same key in place or appends it.
func upsert[T any](items []T, item T, key func(T) string) []T {
	k := key(item)
	for i := range items {
		if key(items[i]) == k {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func without[T any](items []T, match func(T) bool) ([]T, bool) {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	return kept, len(kept) != len(items)
}
