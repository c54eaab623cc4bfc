package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/flicky/storefront/internal/model"
)

// WishlistRepository stores the device wishlist: product ids in the order
// they were added.
type WishlistRepository interface {
	Get(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
	Toggle(ctx context.Context, productID string) (ids []string, ok bool, err error)
}

type kvWishlistRepo struct{ s *slots }

func (r *kvWishlistRepo) Get(ctx context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids, err := loadList[string](ctx, r.s, wishlistKey)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return ids, nil
}

// Save replaces the whole list. Repeated ids keep their first position.
func (r *kvWishlistRepo) Save(ctx context.Context, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.write(ctx, wishlistKey, unique); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}
	return nil
}

// Toggle removes productID when it is listed and appends it otherwise. Only
// ids present in the catalog can be appended; for any other id ok is false
// and nothing is written.
func (r *kvWishlistRepo) Toggle(ctx context.Context, productID string) ([]string, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids, err := loadList[string](ctx, r.s, wishlistKey)
	if err != nil {
		return nil, false, fmt.Errorf("toggle wishlist: %w", err)
	}

	if i := slices.Index(ids, productID); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	} else {
		products, err := loadSeeded(ctx, r.s, productsKey, DefaultProducts)
		if err != nil {
			return nil, false, fmt.Errorf("toggle wishlist: %w", err)
		}
		if !slices.ContainsFunc(products, func(p model.Product) bool { return p.ID == productID }) {
			return ids, false, nil
		}
		ids = append(ids, productID)
	}

	if err := r.s.write(ctx, wishlistKey, ids); err != nil {
		return nil, false, fmt.Errorf("toggle wishlist: %w", err)
	}
	return ids, true, nil
}
