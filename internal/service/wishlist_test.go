package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistService_ToggleRoundTrip(t *testing.T) {
	st := newSeededStore(t)
	svc := NewWishlistService(st.Wishlist, st.Products)
	ctx := context.Background()

	ids, err := svc.Toggle(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)

	ids, err = svc.Toggle(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = svc.Toggle(ctx, "p1")
	require.NoError(t, err)
	ids, err = svc.Toggle(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)

	stored, err := svc.IDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, stored)
}

func TestWishlistService_UnknownProductIsRejected(t *testing.T) {
	st := newSeededStore(t)
	svc := NewWishlistService(st.Wishlist, st.Products)

	_, err := svc.Toggle(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProductNotFound)

	ids, err := svc.IDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestWishlistService_ProductsFollowCatalogAndSkipDeleted(t *testing.T) {
	st := newSeededStore(t)
	svc := NewWishlistService(st.Wishlist, st.Products)
	ctx := context.Background()

	for _, id := range []string{"p5", "p2", "p4"} {
		_, err := svc.Toggle(ctx, id)
		require.NoError(t, err)
	}
	require.NoError(t, st.Products.Delete(ctx, "p4"))

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p5"}, productIDs(products))

	// The deleted id stays listed and can still be toggled off.
	ids, err := svc.Toggle(ctx, "p4")
	require.NoError(t, err)
	assert.Equal(t, []string{"p5", "p2"}, ids)
}

func TestWishlistService_ConcurrentTogglesAreNotLost(t *testing.T) {
	st := newSeededStore(t)
	svc := NewWishlistService(st.Wishlist, st.Products)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5", "p6"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.Toggle(ctx, id)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	ids, err := svc.IDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 6)
}
