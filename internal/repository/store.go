// Package repository is the storefront's data layer. Every collection lives
// in one named slot of a kv.Store as a JSON document and every mutation
// rewrites the whole slot before returning.
//
// A Store serializes its read-modify-write sequences with a mutex, so calls
// from one process never interleave. Two processes sharing a medium are not
// coordinated: the last writer wins and the other write is silently lost.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/flicky/storefront/internal/kv"
)

var (
	// ErrCorrupt means a slot holds bytes that do not decode.
	ErrCorrupt = errors.New("stored value is corrupt")
	// ErrUnavailable means the medium failed to read or write.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrConflict means a create would duplicate a unique id or email.
	ErrConflict = errors.New("record already exists")
)

const (
	productsKey    = "raksham_products_v1"
	bannersKey     = "raksham_banners_v1"
	ordersKey      = "raksham_orders_v1"
	usersKey       = "raksham_users_v1"
	wishlistKey    = "raksham_wishlist_v1"
	currentUserKey = "raksham_current_user_v1"

	seededPrefix = "raksham_seeded_v1:"
)

// SlotKeys lists the six slots in a stable order.
var SlotKeys = []string{productsKey, bannersKey, ordersKey, usersKey, wishlistKey, currentUserKey}

type Store struct {
	Products ProductRepository
	Banners  BannerRepository
	Orders   OrderRepository
	Users    UserRepository
	Wishlist WishlistRepository
	Session  SessionRepository

	slots *slots
}

func New(medium kv.Store, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &slots{kv: medium, log: log}
	return &Store{
		Products: &kvProductRepo{s: s},
		Banners:  &kvBannerRepo{s: s},
		Orders:   &kvOrderRepo{s: s},
		Users:    &kvUserRepo{s: s},
		Wishlist: &kvWishlistRepo{s: s},
		Session:  &kvSessionRepo{s: s},
		slots:    s,
	}
}

// Seed writes the default catalog and banners unless they were initialized
// before. Calling it at startup keeps seeding out of the read path.
func (st *Store) Seed(ctx context.Context) error {
	st.slots.mu.Lock()
	defer st.slots.mu.Unlock()

	if _, err := loadSeeded(ctx, st.slots, productsKey, DefaultProducts); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	if _, err := loadSeeded(ctx, st.slots, bannersKey, DefaultBanners); err != nil {
		return fmt.Errorf("seed banners: %w", err)
	}
	return nil
}

// Export returns the raw contents of every present slot.
func (st *Store) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	st.slots.mu.Lock()
	defer st.slots.mu.Unlock()

	out := make(map[string]json.RawMessage, len(SlotKeys))
	for _, key := range SlotKeys {
		raw, ok, err := st.slots.readRaw(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("export %s: %w", key, ErrCorrupt)
		}
		out[key] = raw
	}
	return out, nil
}

func (st *Store) Ping(ctx context.Context) error {
	if err := st.slots.kv.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

type slots struct {
	kv  kv.Store
	mu  sync.Mutex
	log *slog.Logger
}

func (s *slots) readRaw(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w: %w", key, ErrUnavailable, err)
	}
	return raw, true, nil
}

// read decodes the slot into dst and reports whether it was present.
func (s *slots) read(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.readRaw(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Error("slot does not decode", "slot", key, "error", err)
		return true, fmt.Errorf("decode %s: %w: %v", key, ErrCorrupt, err)
	}
	return true, nil
}

func (s *slots) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w: %w", key, ErrUnavailable, err)
	}
	return nil
}

func (s *slots) remove(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w: %w", key, ErrUnavailable, err)
	}
	return nil
}

// loadList reads a list slot; an absent slot is an empty list.
func loadList[T any](ctx context.Context, s *slots, key string) ([]T, error) {
	items := []T{}
	if _, err := s.read(ctx, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// loadSeeded reads a list slot that starts out with default content.
//
// The seeded marker separates "never initialized" from "emptied by the
// user". A slot with data but no marker predates the marker and is adopted
// as is.
func loadSeeded[T any](ctx context.Context, s *slots, key string, defaults func() []T) ([]T, error) {
	marker := seededPrefix + key
	_, seeded, err := s.readRaw(ctx, marker)
	if err != nil {
		return nil, err
	}

	items := []T{}
	present, err := s.read(ctx, key, &items)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	if seeded {
		return items, nil
	}

	if !present {
		items = defaults()
		if err := s.write(ctx, key, items); err != nil {
			return nil, err
		}
		s.log.Info("seeded slot", "slot", key, "records", len(items))
	} else {
		s.log.Info("adopted unmarked slot", "slot", key, "records", len(items))
	}
	if err := s.kv.Set(ctx, marker, []byte("true")); err != nil {
		return nil, fmt.Errorf("write %s: %w: %w", marker, ErrUnavailable, err)
	}
	return items, nil
}
