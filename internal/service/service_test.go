package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flicky/storefront/internal/kv"
	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newSeededStore(t *testing.T) *repository.Store {
	t.Helper()
	st := repository.New(kv.NewMemoryStore(), discardLogger())
	require.NoError(t, st.Seed(context.Background()))
	return st
}

// --- Mock notifier ---

type recordingNotifier struct {
	mu   sync.Mutex
	sent []model.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg model.Notification) error {
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) last(t *testing.T) model.Notification {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.sent)
	return n.sent[len(n.sent)-1]
}

// --- Broken medium ---

var errMediumDown = errors.New("medium down")

type brokenKV struct{ kv.Store }

func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errMediumDown }
