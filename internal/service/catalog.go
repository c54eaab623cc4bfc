package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/flicky/storefront/internal/dto"
	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogService struct {
	productRepo repository.ProductRepository
	now         func() time.Time
}

func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo, now: time.Now}
}

// List filters by category (empty means all) and by a search term matched
// against name, tagline and description ignoring case and accents.
func (s *CatalogService) List(ctx context.Context, req dto.ListProductsRequest) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	term := fold(strings.TrimSpace(req.Search))
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if req.Category != "" && string(p.Category) != req.Category {
			continue
		}
		if term != "" && !matchesAny(term, p.Name, p.Tagline, p.Description) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// AdminSearch matches the term against name and category only.
func (s *CatalogService) AdminSearch(ctx context.Context, term string) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	needle := fold(strings.TrimSpace(term))
	if needle == "" {
		return products, nil
	}
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matchesAny(needle, p.Name, string(p.Category)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Save creates the product when id is empty and otherwise replaces the
// record with that id, keeping its reviews.
func (s *CatalogService) Save(ctx context.Context, id string, req dto.ProductRequest) (*model.Product, error) {
	product := model.Product{
		ID:              id,
		Name:            strings.TrimSpace(req.Name),
		Tagline:         req.Tagline,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Price:           req.Price,
		Category:        req.Category,
		ImageURL:        req.ImageURL,
		Gallery:         req.Gallery,
		Features:        req.Features,
		Mukhi:           req.Mukhi,
		Origin:          req.Origin,
		Size:            req.Size,
		Vibration:       req.Vibration,
		Certification:   req.Certification,
		Stock:           req.Stock,
		Material:        req.Material,
		Weight:          req.Weight,
		PlanetaryRuler:  req.PlanetaryRuler,
		SpecificMantra:  req.SpecificMantra,
	}
	if product.Features == nil {
		product.Features = []string{}
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	saved, err := s.productRepo.SaveDetails(ctx, &product)
	if err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return saved, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// AddReview puts the review first on the product's list.
func (s *CatalogService) AddReview(ctx context.Context, productID string, req dto.ReviewRequest) (*model.Product, error) {
	review := model.Review{
		ID:       uuid.NewString(),
		UserName: strings.TrimSpace(req.UserName),
		Rating:   req.Rating,
		Comment:  req.Comment,
		Date:     s.now().UTC().Format(time.RFC3339),
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.AddReview(ctx, productID, review)
	if err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// fold lowercases s and strips combining marks so "Rudrakṣa" matches
// "rudraksa".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(out)
}

func matchesAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(fold(f), needle) {
			return true
		}
	}
	return false
}
