package repository

import (
	"context"
	"fmt"

	"github.com/flicky/storefront/internal/model"
)

// SessionRepository holds the user signed in on this device, if any.
type SessionRepository interface {
	Get(ctx context.Context) (*model.User, error)
	// Set overwrites the session with user; nil signs out.
	Set(ctx context.Context, user *model.User) error
}

type kvSessionRepo struct{ s *slots }

func (r *kvSessionRepo) Get(ctx context.Context) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var user *model.User
	if _, err := r.s.read(ctx, currentUserKey, &user); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return user, nil
}

func (r *kvSessionRepo) Set(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if user == nil {
		if err := r.s.remove(ctx, currentUserKey); err != nil {
			return fmt.Errorf("clear current user: %w", err)
		}
		return nil
	}
	if err := r.s.write(ctx, currentUserKey, user); err != nil {
		return fmt.Errorf("set current user: %w", err)
	}
	return nil
}
