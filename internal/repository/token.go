package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/flicky/storefront/internal/kv"
)

type TokenKind string

const (
	// TokenVerified marks an email whose code was confirmed but not yet used.
	TokenVerified TokenKind = "verified"
	// TokenCode holds the one-time code sent to an email.
	TokenCode TokenKind = "otp"
)

// TokenStore keeps short-lived per-email tokens. It shares the medium with
// Store but none of its slots, and every token expires.
type TokenStore struct {
	kv kv.Store
	mu sync.Mutex
}

func NewTokenStore(medium kv.Store) *TokenStore {
	return &TokenStore{kv: medium}
}

func tokenKey(kind TokenKind, email string) string {
	return "raksham_" + string(kind) + "_" + email
}

func (t *TokenStore) Put(ctx context.Context, kind TokenKind, email, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("put %s token: ttl must be positive", kind)
	}
	if err := t.kv.SetWithTTL(ctx, tokenKey(kind, email), []byte(value), ttl); err != nil {
		return fmt.Errorf("put %s token: %w: %w", kind, ErrUnavailable, err)
	}
	return nil
}

// Peek reads a token without consuming it.
func (t *TokenStore) Peek(ctx context.Context, kind TokenKind, email string) (string, bool, error) {
	value, err := t.kv.Get(ctx, tokenKey(kind, email))
	if errors.Is(err, kv.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s token: %w: %w", kind, ErrUnavailable, err)
	}
	return string(value), true, nil
}

// Take reads a token and deletes it, so a value is handed out at most once.
func (t *TokenStore) Take(ctx context.Context, kind TokenKind, email string) (string, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	value, ok, err := t.Peek(ctx, kind, email)
	if err != nil || !ok {
		return "", false, err
	}
	if err := t.Delete(ctx, kind, email); err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (t *TokenStore) Delete(ctx context.Context, kind TokenKind, email string) error {
	if err := t.kv.Delete(ctx, tokenKey(kind, email)); err != nil {
		return fmt.Errorf("delete %s token: %w: %w", kind, ErrUnavailable, err)
	}
	return nil
}
