package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
	"github.com/flicky/storefront/internal/worker"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrVerificationRequired = errors.New("email verification required")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCode          = errors.New("verification code does not match")
	ErrNotSignedIn          = errors.New("no user signed in")
	ErrInvalidPurpose       = errors.New("unknown verification purpose")
)

const (
	PurposeSignup      = "signup"
	PurposeChangeEmail = "change_email"
)

// Tokens is the short-lived per-email key space used by verification.
type Tokens interface {
	Put(ctx context.Context, kind repository.TokenKind, email, value string, ttl time.Duration) error
	Peek(ctx context.Context, kind repository.TokenKind, email string) (string, bool, error)
	Take(ctx context.Context, kind repository.TokenKind, email string) (string, bool, error)
	Delete(ctx context.Context, kind repository.TokenKind, email string) error
}

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      Tokens
	notifier    worker.Notifier
	codeTTL     time.Duration
	flagTTL     time.Duration
	log         *slog.Logger
	newCode     func() (string, error)
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	tokens Tokens,
	notifier worker.Notifier,
	codeTTL, flagTTL time.Duration,
	log *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		notifier:    notifier,
		codeTTL:     codeTTL,
		flagTTL:     flagTTL,
		log:         log,
		newCode:     randomCode,
	}
}

// SendCode issues a fresh six digit code for email and dispatches it.
// A new code replaces any earlier one.
func (s *AuthService) SendCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	code, err := s.newCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.tokens.Put(ctx, repository.TokenCode, email, code, s.codeTTL); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	err = s.notifier.Notify(ctx, model.Notification{
		ID:        uuid.NewString(),
		Kind:      model.NotificationVerificationCode,
		Email:     email,
		Code:      code,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("dispatch code: %w", err)
	}
	return nil
}

// ConfirmCode checks code and, on a match, leaves a verified flag that
// Signup consumes.
func (s *AuthService) ConfirmCode(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)
	if err := s.consumeCode(ctx, email, code); err != nil {
		return err
	}
	if err := s.tokens.Put(ctx, repository.TokenVerified, email, "true", s.flagTTL); err != nil {
		return fmt.Errorf("store verified flag: %w", err)
	}
	return nil
}

func (s *AuthService) Signup(ctx context.Context, email, name string) (*model.User, error) {
	email = normalizeEmail(email)
	if _, ok, err := s.tokens.Peek(ctx, repository.TokenVerified, email); err != nil {
		return nil, fmt.Errorf("check verified flag: %w", err)
	} else if !ok {
		return nil, ErrVerificationRequired
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if _, err := s.userRepo.Add(ctx, email, strings.TrimSpace(name)); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	user, err := s.userRepo.Verify(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("verify user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.sessionRepo.Set(ctx, user); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}
	if err := s.tokens.Delete(ctx, repository.TokenVerified, email); err != nil {
		s.log.Warn("verified flag not cleared", "email", email, "error", err)
	}
	return user, nil
}

// Login signs in a verified user. Unverified users get
// ErrVerificationRequired and should go through VerifyEmail.
func (s *AuthService) Login(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Verified {
		return nil, ErrVerificationRequired
	}
	if err := s.sessionRepo.Set(ctx, user); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}
	return user, nil
}

// VerifyEmail confirms a code for one of two purposes. For signup it marks
// the user with that email verified and signs them in. For change_email it
// moves the signed-in user to the new address.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code, purpose string) (*model.User, error) {
	if purpose != PurposeSignup && purpose != PurposeChangeEmail {
		return nil, ErrInvalidPurpose
	}
	email = normalizeEmail(email)

	var current *model.User
	if purpose == PurposeChangeEmail {
		var err error
		if current, err = s.sessionRepo.Get(ctx); err != nil {
			return nil, fmt.Errorf("get session: %w", err)
		}
		if current == nil {
			return nil, ErrNotSignedIn
		}
	}

	if err := s.checkCode(ctx, email, code); err != nil {
		return nil, err
	}

	var (
		user *model.User
		err  error
	)
	if purpose == PurposeSignup {
		user, err = s.userRepo.Verify(ctx, email)
	} else {
		user, err = s.userRepo.ChangeEmail(ctx, current.Email, email)
	}
	switch {
	case errors.Is(err, repository.ErrConflict):
		return nil, ErrEmailTaken
	case err != nil:
		return nil, fmt.Errorf("verify email: %w", err)
	case user == nil:
		return nil, ErrUserNotFound
	}

	if err := s.tokens.Delete(ctx, repository.TokenCode, email); err != nil {
		s.log.Warn("verification code not cleared", "email", email, "error", err)
	}
	if err := s.sessionRepo.Set(ctx, user); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessionRepo.Set(ctx, nil); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentUser returns ErrNotSignedIn when the session is empty.
func (s *AuthService) CurrentUser(ctx context.Context) (*model.User, error) {
	user, err := s.sessionRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if user == nil {
		return nil, ErrNotSignedIn
	}
	return user, nil
}

// consumeCode checks code and deletes it on a match. A wrong guess leaves
// the code in place until it expires.
func (s *AuthService) consumeCode(ctx context.Context, email, code string) error {
	if err := s.checkCode(ctx, email, code); err != nil {
		return err
	}
	if err := s.tokens.Delete(ctx, repository.TokenCode, email); err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	return nil
}

func (s *AuthService) checkCode(ctx context.Context, email, code string) error {
	want, ok, err := s.tokens.Peek(ctx, repository.TokenCode, email)
	if err != nil {
		return fmt.Errorf("get code: %w", err)
	}
	if !ok || subtle.ConstantTimeCompare([]byte(want), []byte(strings.TrimSpace(code))) != 1 {
		return ErrInvalidCode
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(100000+n.Int64(), 10), nil
}
