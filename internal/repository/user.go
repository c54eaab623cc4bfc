package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/flicky/storefront/internal/model"
)

// UserRepository owns every write to the users slot.
//
// Add and ChangeEmail refuse to duplicate an email. Save is a raw upsert by
// id and does not look at emails: callers that create users through Save
// must check GetByEmail first, or they end up with two records for one
// address and GetByEmail returning whichever comes first.
//
// Emails match ignoring case and surrounding space.
type UserRepository interface {
	GetAll(ctx context.Context) ([]model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
	Add(ctx context.Context, email, name string) (*model.User, error)
	Verify(ctx context.Context, email string) (*model.User, error)
	SetVerified(ctx context.Context, email string, verified bool) (*model.User, error)
	ToggleVerified(ctx context.Context, email string) (*model.User, error)
	ChangeEmail(ctx context.Context, oldEmail, newEmail string) (*model.User, error)
}

type kvUserRepo struct{ s *slots }

func (r *kvUserRepo) GetAll(ctx context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users, err := loadList[model.User](ctx, r.s, usersKey)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

func (r *kvUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexByEmail(users, email); i >= 0 {
		return &users[i], nil
	}
	return nil, nil
}

func (r *kvUserRepo) Save(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users, err := loadList[model.User](ctx, r.s, usersKey)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	users = upsert(users, *user, func(u model.User) string { return u.ID })
	if err := r.s.write(ctx, usersKey, users); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Add appends a new unverified customer.
func (r *kvUserRepo) Add(ctx context.Context, email, name string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users, err := loadList[model.User](ctx, r.s, usersKey)
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	if indexByEmail(users, email) >= 0 {
		return nil, fmt.Errorf("add user %s: %w", email, ErrConflict)
	}

	user := model.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Role:  model.RoleCustomer,
	}
	users = append(users, user)
	if err := r.s.write(ctx, usersKey, users); err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	return &user, nil
}

// Verify marks the first user with email as verified. Returns nil when no
// user matches.
func (r *kvUserRepo) Verify(ctx context.Context, email string) (*model.User, error) {
	return r.SetVerified(ctx, email, true)
}

func (r *kvUserRepo) SetVerified(ctx context.Context, email string, verified bool) (*model.User, error) {
	return r.update(ctx, email, func(u *model.User) { u.Verified = verified })
}

func (r *kvUserRepo) ToggleVerified(ctx context.Context, email string) (*model.User, error) {
	return r.update(ctx, email, func(u *model.User) { u.Verified = !u.Verified })
}

func (r *kvUserRepo) ChangeEmail(ctx context.Context, oldEmail, newEmail string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users, err := loadList[model.User](ctx, r.s, usersKey)
	if err != nil {
		return nil, fmt.Errorf("change email: %w", err)
	}
	i := indexByEmail(users, oldEmail)
	if i < 0 {
		return nil, nil
	}
	if j := indexByEmail(users, newEmail); j >= 0 && j != i {
		return nil, fmt.Errorf("change email to %s: %w", newEmail, ErrConflict)
	}
	users[i].Email = newEmail
	if err := r.s.write(ctx, usersKey, users); err != nil {
		return nil, fmt.Errorf("change email: %w", err)
	}
	u := users[i]
	return &u, nil
}

func (r *kvUserRepo) update(ctx context.Context, email string, fn func(u *model.User)) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	users, err := loadList[model.User](ctx, r.s, usersKey)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	i := indexByEmail(users, email)
	if i < 0 {
		return nil, nil
	}
	fn(&users[i])
	if err := r.s.write(ctx, usersKey, users); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	u := users[i]
	return &u, nil
}

func indexByEmail(users []model.User, email string) int {
	email = strings.TrimSpace(email)
	for i := range users {
		if strings.EqualFold(strings.TrimSpace(users[i].Email), email) {
			return i
		}
	}
	return -1
}
