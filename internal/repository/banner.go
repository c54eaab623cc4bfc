package repository

import (
	"context"
	"fmt"

	"github.com/flicky/storefront/internal/model"
)

type BannerRepository interface {
	GetAll(ctx context.Context) ([]model.Banner, error)
	GetByID(ctx context.Context, id string) (*model.Banner, error)
	Save(ctx context.Context, banner *model.Banner) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) (*model.Banner, error)
	Toggle(ctx context.Context, id string) (*model.Banner, error)
}

type kvBannerRepo struct{ s *slots }

func (r *kvBannerRepo) GetAll(ctx context.Context) ([]model.Banner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	banners, err := loadSeeded(ctx, r.s, bannersKey, DefaultBanners)
	if err != nil {
		return nil, fmt.Errorf("get banners: %w", err)
	}
	return banners, nil
}

func (r *kvBannerRepo) GetByID(ctx context.Context, id string) (*model.Banner, error) {
	banners, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range banners {
		if banners[i].ID == id {
			return &banners[i], nil
		}
	}
	return nil, nil
}

func (r *kvBannerRepo) Save(ctx context.Context, banner *model.Banner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	banners, err := loadSeeded(ctx, r.s, bannersKey, DefaultBanners)
	if err != nil {
		return fmt.Errorf("save banner: %w", err)
	}
	banners = upsert(banners, *banner, func(b model.Banner) string { return b.ID })
	if err := r.s.write(ctx, bannersKey, banners); err != nil {
		return fmt.Errorf("save banner: %w", err)
	}
	return nil
}

func (r *kvBannerRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	banners, err := loadSeeded(ctx, r.s, bannersKey, DefaultBanners)
	if err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	kept, removed := without(banners, func(b model.Banner) bool { return b.ID == id })
	if !removed {
		return nil
	}
	if err := r.s.write(ctx, bannersKey, kept); err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	return nil
}

// SetActive sets only the active flag. Returns nil for an unknown id.
func (r *kvBannerRepo) SetActive(ctx context.Context, id string, active bool) (*model.Banner, error) {
	return r.update(ctx, id, func(b *model.Banner) { b.Active = active })
}

// Toggle flips the active flag in one step. Returns nil for an unknown id.
func (r *kvBannerRepo) Toggle(ctx context.Context, id string) (*model.Banner, error) {
	return r.update(ctx, id, func(b *model.Banner) { b.Active = !b.Active })
}

func (r *kvBannerRepo) update(ctx context.Context, id string, fn func(b *model.Banner)) (*model.Banner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	banners, err := loadSeeded(ctx, r.s, bannersKey, DefaultBanners)
	if err != nil {
		return nil, fmt.Errorf("update banner: %w", err)
	}
	for i := range banners {
		if banners[i].ID != id {
			continue
		}
		fn(&banners[i])
		if err := r.s.write(ctx, bannersKey, banners); err != nil {
			return nil, fmt.Errorf("update banner: %w", err)
		}
		b := banners[i]
		return &b, nil
	}
	return nil, nil
}
