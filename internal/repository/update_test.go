package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/storefront/internal/model"
)

func TestProducts_SaveDetailsKeepsStoredReviews(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Products.AddReview(ctx, "p4", model.Review{ID: "r1", UserName: "Asha", Rating: 5})
	require.NoError(t, err)

	p4, err := store.Products.GetByID(ctx, "p4")
	require.NoError(t, err)
	edited := p4.Clone()
	edited.Price = decimal.NewFromInt(600)
	edited.Reviews = []model.Review{{ID: "forged", Rating: 1}}

	saved, err := store.Products.SaveDetails(ctx, &edited)
	require.NoError(t, err)
	assert.True(t, saved.Price.Equal(decimal.NewFromInt(600)))
	require.Len(t, saved.Reviews, 1)
	assert.Equal(t, "r1", saved.Reviews[0].ID)

	fresh := model.Product{ID: "p7", Name: "Gauri Shankar", Category: model.CategoryHome, Reviews: []model.Review{{ID: "x"}}}
	saved, err = store.Products.SaveDetails(ctx, &fresh)
	require.NoError(t, err)
	assert.Empty(t, saved.Reviews)

	products, err := store.Products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 7)
	assert.Equal(t, "p4", products[3].ID)
}

func TestProducts_ReviewsSurviveConcurrentEdits(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx))

	p1, err := store.Products.GetByID(ctx, "p1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := store.Products.AddReview(ctx, "p1", model.Review{ID: fmt.Sprintf("r%d", i), UserName: "Asha", Rating: 5})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			edited := p1.Clone()
			_, err := store.Products.SaveDetails(ctx, &edited)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, got.Reviews, 10)
}

func TestBanners_DeleteAbsentIsByteIdentical(t *testing.T) {
	store, medium := newTestStore(t)
	ctx := context.Background()

	_, err := store.Banners.GetAll(ctx)
	require.NoError(t, err)
	before := rawSlot(t, medium, bannersKey)

	require.NoError(t, store.Banners.Delete(ctx, "b404"))
	assert.Equal(t, before, rawSlot(t, medium, bannersKey))
}

func TestBanners_ConcurrentTogglesAllApply(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 9; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := store.Banners.Toggle(ctx, "b1")
			assert.NoError(t, err)
			assert.NotNil(t, b)
		}()
	}
	wg.Wait()

	b1, err := store.Banners.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.False(t, b1.Active)

	missing, err := store.Banners.Toggle(ctx, "b9")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWishlist_Toggle(t *testing.T) {
	store, medium := newTestStore(t)
	ctx := context.Background()

	ids, ok, err := store.Wishlist.Toggle(ctx, "p2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"p2"}, ids)

	before := rawSlot(t, medium, wishlistKey)
	_, ok, err = store.Wishlist.Toggle(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, rawSlot(t, medium, wishlistKey))

	ids, ok, err = store.Wishlist.Toggle(ctx, "p2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, ids)
}

func TestWishlist_ConcurrentTogglesKeepEveryID(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx))

	var wg sync.WaitGroup
	for i := 1; i <= 6; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, ok, err := store.Wishlist.Toggle(ctx, id)
			assert.NoError(t, err)
			assert.True(t, ok)
		}(fmt.Sprintf("p%d", i))
	}
	wg.Wait()

	ids, err := store.Wishlist.Get(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2", "p3", "p4", "p5", "p6"}, ids)
}

func TestUsers_ConcurrentToggleVerified(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	_, err := store.Users.Add(ctx, "ravi@example.com", "Ravi")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 7; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Users.ToggleVerified(ctx, "ravi@example.com")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	u, err := store.Users.GetByEmail(ctx, "ravi@example.com")
	require.NoError(t, err)
	assert.True(t, u.Verified)
}

func TestUsers_EmailMatchIgnoresCase(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	legacy := model.User{ID: "u-legacy", Email: "Meera@Example.com", Name: "Meera", Role: model.RoleCustomer}
	require.NoError(t, store.Users.Save(ctx, &legacy))

	found, err := store.Users.GetByEmail(ctx, "meera@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "u-legacy", found.ID)

	u, err := store.Users.SetVerified(ctx, "meera@example.com", true)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.Verified)

	_, err = store.Users.Add(ctx, "MEERA@example.com", "Copy")
	assert.ErrorIs(t, err, ErrConflict)

	u, err = store.Users.ChangeEmail(ctx, "meera@example.com", "meera@example.com")
	require.NoError(t, err)
	assert.Equal(t, "meera@example.com", u.Email)
}

func TestOrders_SaveUpserts(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Orders.Create(ctx, ptr(sampleOrder("RAK-000000001", nil, 900, 0, 45))))
	require.NoError(t, store.Orders.Create(ctx, ptr(sampleOrder("RAK-000000002", nil, 2450, 245, 0))))

	t.Run("existing id replaced in place", func(t *testing.T) {
		edited := sampleOrder("RAK-000000001", nil, 900, 0, 45)
		edited.ShippingAddress.Line1 = "7 Assi Ghat"
		require.NoError(t, store.Orders.Save(ctx, &edited))

		orders, err := store.Orders.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "RAK-000000002", orders[0].ID)
		assert.Equal(t, "RAK-000000001", orders[1].ID)
		assert.Equal(t, "7 Assi Ghat", orders[1].ShippingAddress.Line1)
	})

	t.Run("new id appended", func(t *testing.T) {
		require.NoError(t, store.Orders.Save(ctx, ptr(sampleOrder("RAK-000000003", nil, 125, 25, 45))))

		orders, err := store.Orders.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, "RAK-000000003", orders[2].ID)
	})

	t.Run("id required", func(t *testing.T) {
		assert.ErrorIs(t, store.Orders.Save(ctx, &model.Order{}), model.ErrInvalid)
	})
}

func TestOrders_Update(t *testing.T) {
	store, medium := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Orders.Create(ctx, ptr(sampleOrder("RAK-000000001", nil, 900, 0, 45))))

	o, err := store.Orders.Update(ctx, "RAK-000000001", func(o *model.Order) error {
		o.Status = model.OrderStatusShipped
		o.ID = "RAK-HIJACKED"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "RAK-000000001", o.ID)
	assert.Equal(t, model.OrderStatusShipped, o.Status)

	before := rawSlot(t, medium, ordersKey)
	errStop := errors.New("stop")
	_, err = store.Orders.Update(ctx, "RAK-000000001", func(o *model.Order) error {
		o.Status = model.OrderStatusDelivered
		return errStop
	})
	assert.ErrorIs(t, err, errStop)
	assert.Equal(t, before, rawSlot(t, medium, ordersKey))

	missing, err := store.Orders.Update(ctx, "RAK-404", func(*model.Order) error { return nil })
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func ptr[T any](v T) *T { return &v }
