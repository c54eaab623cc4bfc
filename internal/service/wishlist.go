package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
)

type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

func (s *WishlistService) IDs(ctx context.Context) ([]string, error) {
	ids, err := s.wishlistRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	return ids, nil
}

// Toggle removes productID when it is on the list and appends it otherwise.
// Only catalog products can be added; removing works for any id.
func (s *WishlistService) Toggle(ctx context.Context, productID string) ([]string, error) {
	ids, ok, err := s.wishlistRepo.Toggle(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("toggle wishlist: %w", err)
	}
	if !ok {
		return nil, ErrProductNotFound
	}
	return ids, nil
}

// Products resolves the wishlist against the catalog. Ids of products that
// have since been deleted are skipped.
func (s *WishlistService) Products(ctx context.Context) ([]model.Product, error) {
	ids, err := s.IDs(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]model.Product, 0, len(ids))
	for _, p := range products {
		if slices.Contains(ids, p.ID) {
			out = append(out, p)
		}
	}
	return out, nil
}
