package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flicky/storefront/internal/kv"
)

var errDiskGone = errors.New("disk gone")

// flakyKV fails reads or writes on demand.
type flakyKV struct {
	kv.Store
	failGet bool
	failSet bool
}

func (f *flakyKV) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet {
		return nil, errDiskGone
	}
	return f.Store.Get(ctx, key)
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet {
		return errDiskGone
	}
	return f.Store.Set(ctx, key, value)
}

func (f *flakyKV) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.failSet {
		return errDiskGone
	}
	return f.Store.SetWithTTL(ctx, key, value, ttl)
}

func newTestStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	medium := kv.NewMemoryStore()
	return New(medium, nil), medium
}

func rawSlot(t *testing.T, medium kv.Store, key string) []byte {
	t.Helper()
	raw, err := medium.Get(context.Background(), key)
	require.NoError(t, err)
	return raw
}
