package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/flicky/storefront/internal/dto"
	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
)

var ErrBannerNotFound = errors.New("banner not found")

type BannerService struct {
	bannerRepo repository.BannerRepository
}

func NewBannerService(bannerRepo repository.BannerRepository) *BannerService {
	return &BannerService{bannerRepo: bannerRepo}
}

func (s *BannerService) List(ctx context.Context) ([]model.Banner, error) {
	banners, err := s.bannerRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return banners, nil
}

// Active returns the banners shoppers see, in collection order.
func (s *BannerService) Active(ctx context.Context) ([]model.Banner, error) {
	banners, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Banner, 0, len(banners))
	for _, b := range banners {
		if b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *BannerService) Save(ctx context.Context, id string, req dto.BannerRequest) (*model.Banner, error) {
	banner := model.Banner{
		ID:       id,
		ImageURL: req.ImageURL,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Link:     req.Link,
		Active:   true,
	}
	if req.Active != nil {
		banner.Active = *req.Active
	}
	if banner.ImageURL == "" {
		return nil, fmt.Errorf("%w: image url is required", model.ErrInvalid)
	}
	if banner.ID == "" {
		banner.ID = uuid.NewString()
	}

	if err := s.bannerRepo.Save(ctx, &banner); err != nil {
		return nil, fmt.Errorf("save banner: %w", err)
	}
	return &banner, nil
}

func (s *BannerService) Delete(ctx context.Context, id string) error {
	existing, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get banner: %w", err)
	}
	if existing == nil {
		return ErrBannerNotFound
	}
	if err := s.bannerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete banner: %w", err)
	}
	return nil
}

// Toggle flips the active flag.
func (s *BannerService) Toggle(ctx context.Context, id string) (*model.Banner, error) {
	banner, err := s.bannerRepo.Toggle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle banner: %w", err)
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}
	return banner, nil
}
