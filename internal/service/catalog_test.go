package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/storefront/internal/dto"
	"github.com/flicky/storefront/internal/kv"
	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
)

func productIDs(products []model.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func newCatalog(t *testing.T) (*CatalogService, *repository.Store) {
	t.Helper()
	st := newSeededStore(t)
	svc := NewCatalogService(st.Products)
	svc.now = func() time.Time { return fixedNow }
	return svc, st
}

func TestCatalogService_ListByCategory(t *testing.T) {
	svc, _ := newCatalog(t)

	products, err := svc.List(context.Background(), dto.ListProductsRequest{Category: "Wearable"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p4", "p5"}, productIDs(products))

	all, err := svc.List(context.Background(), dto.ListProductsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestCatalogService_SearchIgnoresCaseAndAccents(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "p7", dto.ProductRequest{
		Name:     "Rudrākṣa Kantha",
		Price:    decimal.NewFromInt(310),
		Category: model.CategoryWearable,
	})
	require.NoError(t, err)

	products, err := svc.List(ctx, dto.ListProductsRequest{Search: "RUDRAKSA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p7"}, productIDs(products))

	products, err = svc.List(ctx, dto.ListProductsRequest{Search: "solar radiance"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p4"}, productIDs(products))
}

func TestCatalogService_AdminSearch(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	byName, err := svc.AdminSearch(ctx, "mala")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3", "p6"}, productIDs(byName))

	byCategory, err := svc.AdminSearch(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p6"}, productIDs(byCategory))

	everything, err := svc.AdminSearch(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, everything, 6)
}

func TestCatalogService_GetByID(t *testing.T) {
	svc, _ := newCatalog(t)

	p, err := svc.GetByID(context.Background(), "p3")
	require.NoError(t, err)
	assert.Equal(t, "Pancha Mukhi Japa Mala", p.Name)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_SaveCreatesWithGeneratedID(t *testing.T) {
	svc, st := newCatalog(t)
	ctx := context.Background()

	p, err := svc.Save(ctx, "", dto.ProductRequest{
		Name:     "  Tulsi Mala ",
		Price:    decimal.NewFromInt(80),
		Category: model.CategoryHome,
		Stock:    model.IntPtr(4),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Tulsi Mala", p.Name)
	assert.NotNil(t, p.Features)

	all, err := st.Products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 7)
	assert.Equal(t, p.ID, all[6].ID)
}

func TestCatalogService_SaveKeepsReviews(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	_, err := svc.AddReview(ctx, "p1", dto.ReviewRequest{UserName: "Anaya", Rating: 5, Comment: "Calm"})
	require.NoError(t, err)

	updated, err := svc.Save(ctx, "p1", dto.ProductRequest{
		Name:     "Ek Mukhi Rudraksha",
		Price:    decimal.NewFromInt(2600),
		Category: model.CategoryHome,
	})
	require.NoError(t, err)
	require.Len(t, updated.Reviews, 1)
	assert.Equal(t, "Anaya", updated.Reviews[0].UserName)
	assert.True(t, decimal.NewFromInt(2600).Equal(updated.Price))
}

func TestCatalogService_SaveValidates(t *testing.T) {
	svc, _ := newCatalog(t)

	tests := []struct {
		name string
		req  dto.ProductRequest
	}{
		{"missing name", dto.ProductRequest{Price: decimal.NewFromInt(1), Category: model.CategoryHome}},
		{"negative price", dto.ProductRequest{Name: "x", Price: decimal.NewFromInt(-1), Category: model.CategoryHome}},
		{"unknown category", dto.ProductRequest{Name: "x", Category: "Jewellery"}},
		{"negative stock", dto.ProductRequest{Name: "x", Category: model.CategoryHome, Stock: model.IntPtr(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), "", tt.req)
			assert.ErrorIs(t, err, model.ErrInvalid)
		})
	}
}

func TestCatalogService_Delete(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "p6"))
	_, err := svc.GetByID(ctx, "p6")
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "p6"), ErrProductNotFound)
}

func TestCatalogService_AddReview(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	p, err := svc.AddReview(ctx, "p2", dto.ReviewRequest{UserName: "Dev", Rating: 4, Comment: "Beautiful"})
	require.NoError(t, err)
	require.Len(t, p.Reviews, 1)
	assert.NotEmpty(t, p.Reviews[0].ID)
	assert.Equal(t, "2026-03-01T10:00:00Z", p.Reviews[0].Date)

	_, err = svc.AddReview(ctx, "p2", dto.ReviewRequest{UserName: "Dev", Rating: 6})
	assert.ErrorIs(t, err, model.ErrInvalid)

	_, err = svc.AddReview(ctx, "nope", dto.ReviewRequest{UserName: "Dev", Rating: 3})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalogService_StorageFailureSurfaces(t *testing.T) {
	st := repository.New(brokenKV{kv.NewMemoryStore()}, discardLogger())
	svc := NewCatalogService(st.Products)

	_, err := svc.List(context.Background(), dto.ListProductsRequest{})
	assert.ErrorIs(t, err, repository.ErrUnavailable)
}
