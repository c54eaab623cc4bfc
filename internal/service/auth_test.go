package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/storefront/internal/kv"
	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
)

const testCode = "482913"

type authFixture struct {
	svc      *AuthService
	store    *repository.Store
	tokens   *repository.TokenStore
	notifier *recordingNotifier
}

func newAuth(t *testing.T) authFixture {
	t.Helper()
	medium := kv.NewMemoryStore()
	st := repository.New(medium, discardLogger())
	tokens := repository.NewTokenStore(medium)
	notifier := &recordingNotifier{}
	svc := NewAuthService(st.Users, st.Session, tokens, notifier, 10*time.Minute, 30*time.Minute, discardLogger())
	svc.newCode = func() (string, error) { return testCode, nil }
	return authFixture{svc: svc, store: st, tokens: tokens, notifier: notifier}
}

func (f authFixture) session(t *testing.T) *model.User {
	t.Helper()
	u, err := f.store.Session.Get(context.Background())
	require.NoError(t, err)
	return u
}

func TestAuthService_SendCodeDispatches(t *testing.T) {
	f := newAuth(t)

	require.NoError(t, f.svc.SendCode(context.Background(), " Meera@Example.com"))

	sent := f.notifier.last(t)
	assert.Equal(t, model.NotificationVerificationCode, sent.Kind)
	assert.Equal(t, "meera@example.com", sent.Email)
	assert.Equal(t, testCode, sent.Code)
	assert.NotEmpty(t, sent.ID)
}

func TestAuthService_SendCodeFailsWhenDispatchFails(t *testing.T) {
	f := newAuth(t)
	f.notifier.err = errors.New("queue full")

	assert.Error(t, f.svc.SendCode(context.Background(), "meera@example.com"))
}

func TestAuthService_SignupFlow(t *testing.T) {
	f := newAuth(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, "meera@example.com", "Meera")
	assert.ErrorIs(t, err, ErrVerificationRequired)

	require.NoError(t, f.svc.SendCode(ctx, "meera@example.com"))
	assert.ErrorIs(t, f.svc.ConfirmCode(ctx, "meera@example.com", "000000"), ErrInvalidCode)
	require.NoError(t, f.svc.ConfirmCode(ctx, "MEERA@example.com", testCode))

	user, err := f.svc.Signup(ctx, "meera@example.com", " Meera ")
	require.NoError(t, err)
	assert.True(t, user.Verified)
	assert.Equal(t, "Meera", user.Name)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.Equal(t, user.ID, f.session(t).ID)

	// The verified flag is single use.
	_, ok, err := f.tokens.Peek(ctx, repository.TokenVerified, "meera@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	// And so is the code.
	assert.ErrorIs(t, f.svc.ConfirmCode(ctx, "meera@example.com", testCode), ErrInvalidCode)
}

func TestAuthService_SignupRejectsTakenEmail(t *testing.T) {
	f := newAuth(t)
	ctx := context.Background()
	_, err := f.store.Users.Add(ctx, "a@x.com", "First")
	require.NoError(t, err)
	require.NoError(t, f.tokens.Put(ctx, repository.TokenVerified, "a@x.com", "true", time.Minute))

	_, err = f.svc.Signup(ctx, "a@x.com", "Second")
	assert.ErrorIs(t, err, ErrEmailTaken)

	users, err := f.store.Users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuth(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.store.Users.Add(ctx, "meera@example.com", "Meera")
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, "meera@example.com")
	assert.ErrorIs(t, err, ErrVerificationRequired)
	assert.Nil(t, f.session(t))

	_, err = f.store.Users.Verify(ctx, "meera@example.com")
	require.NoError(t, err)
	user, err := f.svc.Login(ctx, "Meera@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "meera@example.com", f.session(t).Email)
	assert.Equal(t, user.ID, f.session(t).ID)
}

func TestAuthService_VerifyEmailForSignup(t *testing.T) {
	f := newAuth(t)
	ctx := context.Background()
	_, err := f.store.Users.Add(ctx, "meera@example.com", "Meera")
	require.NoError(t, err)

	require.NoError(t, f.svc.SendCode(ctx, "meera@example.com"))
	user, err := f.svc.VerifyEmail(ctx, "meera@example.com", testCode, PurposeSignup)
	require.NoError(t, err)
	assert.True(t, user.Verified)
	assert.True(t, f.session(t).Verified)

	_, err = f.svc.VerifyEmail(ctx, "meera@example.com", testCode, PurposeSignup)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestAuthService_VerifyEmailSignupUnknownUser(t *testing.T) {
	f := newAuth(t)
	ctx := context.Background()
	require.NoError(t, f.svc.SendCode(ctx, "ghost@x.com"))

	_, err := f.svc.VerifyEmail(ctx, "ghost@x.com", testCode, PurposeSignup)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_VerifyEmailChangesAddress(t *testing.T) {
	f := newAuth(t)
	ctx := context.Background()

	_, err := f.svc.VerifyEmail(ctx, "new@x.com", testCode, PurposeChangeEmail)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	_, err = f.store.Users.Add(ctx, "old@x.com", "Meera")
	require.NoError(t, err)
	me, err := f.store.Users.Verify(ctx, "old@x.com")
	require.NoError(t, err)
	require.NoError(t, f.store.Session.Set(ctx, me))

	require.NoError(t, f.svc.SendCode(ctx, "new@x.com"))
	user, err := f.svc.VerifyEmail(ctx, "new@x.com", testCode, PurposeChangeEmail)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", user.Email)
	assert.Equal(t, me.ID, user.ID)
	assert.Equal(t, "new@x.com", f.session(t).Email)

	old, err := f.store.Users.GetByEmail(ctx, "old@x.com")
	require.NoError(t, err)
	assert.Nil(t, old)

	_, pending, err := f.tokens.Peek(ctx, repository.TokenCode, "new@x.com")
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestAuthService_VerifyEmailChangeToTakenAddress(t *testing.T) {
	f := newAuth(t)
	ctx := context.Background()
	_, err := f.store.Users.Add(ctx, "taken@x.com", "Dev")
	require.NoError(t, err)
	me, err := f.store.Users.Add(ctx, "me@x.com", "Meera")
	require.NoError(t, err)
	require.NoError(t, f.store.Session.Set(ctx, me))

	require.NoError(t, f.svc.SendCode(ctx, "taken@x.com"))
	_, err = f.svc.VerifyEmail(ctx, "taken@x.com", testCode, PurposeChangeEmail)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "me@x.com", f.session(t).Email)

	// The code survives the conflict and works once the address frees up.
	users, err := f.store.Users.GetAll(ctx)
	require.NoError(t, err)
	for i := range users {
		if users[i].Email == "taken@x.com" {
			users[i].Email = "moved@x.com"
			require.NoError(t, f.store.Users.Save(ctx, &users[i]))
		}
	}
	user, err := f.svc.VerifyEmail(ctx, "taken@x.com", testCode, PurposeChangeEmail)
	require.NoError(t, err)
	assert.Equal(t, me.ID, user.ID)
	assert.Equal(t, "taken@x.com", user.Email)
}

func TestAuthService_VerifyEmailUnknownPurpose(t *testing.T) {
	f := newAuth(t)

	_, err := f.svc.VerifyEmail(context.Background(), "a@x.com", testCode, "reset")
	assert.ErrorIs(t, err, ErrInvalidPurpose)
}

func TestAuthService_LogoutAndCurrentUser(t *testing.T) {
	f := newAuth(t)
	ctx := context.Background()

	_, err := f.svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	me, err := f.store.Users.Add(ctx, "me@x.com", "Meera")
	require.NoError(t, err)
	require.NoError(t, f.store.Session.Set(ctx, me))

	got, err := f.svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, me.ID, got.ID)

	require.NoError(t, f.svc.Logout(ctx))
	_, err = f.svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestRandomCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.NotEqual(t, byte('0'), code[0])
	}
}
