package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBackupDisabled     = errors.New("backup storage not configured")
)

// Exporter produces a copy of every persisted slot.
type Exporter interface {
	Export(ctx context.Context) (map[string]json.RawMessage, error)
}

type BackupUploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
}

type AdminCredentials struct {
	Email    string
	Password string
}

type DashboardStats struct {
	Stats
	Products int
	Users    int
}

type Backup struct {
	Key   string
	Slots int
}

type AdminService struct {
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	exporter     Exporter
	uploader     BackupUploader
	adminEmail   string
	passwordHash []byte
	jwtSecret    []byte
	jwtExpiry    time.Duration
	now          func() time.Time
}

// NewAdminService hashes the configured password once. uploader may be nil,
// in which case Backup returns ErrBackupDisabled.
func NewAdminService(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	exporter Exporter,
	uploader BackupUploader,
	creds AdminCredentials,
	jwtSecret string,
	jwtExpiry time.Duration,
) (*AdminService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &AdminService{
		userRepo:     userRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		exporter:     exporter,
		uploader:     uploader,
		adminEmail:   strings.TrimSpace(creds.Email),
		passwordHash: hash,
		jwtSecret:    []byte(jwtSecret),
		jwtExpiry:    jwtExpiry,
		now:          time.Now,
	}, nil
}

// Login returns a signed admin token.
func (s *AdminService) Login(ctx context.Context, email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(email)), []byte(s.adminEmail)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !emailOK || passwordErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.generateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

func (s *AdminService) generateToken() (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  s.adminEmail,
		"role": string(model.RoleAdmin),
		"exp":  now.Add(s.jwtExpiry).Unix(),
		"iat":  now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AdminService) Users(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetUserVerified overrides the verified flag without any email round trip.
// A nil value flips the current flag.
func (s *AdminService) SetUserVerified(ctx context.Context, email string, verified *bool) (*model.User, error) {
	email = normalizeEmail(email)

	var (
		user *model.User
		err  error
	)
	if verified == nil {
		user, err = s.userRepo.ToggleVerified(ctx, email)
	} else {
		user, err = s.userRepo.SetVerified(ctx, email, *verified)
	}
	if err != nil {
		return nil, fmt.Errorf("set verified: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AdminService) Stats(ctx context.Context) (*DashboardStats, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &DashboardStats{
		Stats:    summarize(orders),
		Products: len(products),
		Users:    len(users),
	}, nil
}

// Backup uploads every slot as one JSON document under
// backups/<UTC timestamp>.json.
func (s *AdminService) Backup(ctx context.Context) (*Backup, error) {
	if s.uploader == nil {
		return nil, ErrBackupDisabled
	}

	slots, err := s.exporter.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("export store: %w", err)
	}
	taken := s.now().UTC()
	body, err := json.Marshal(struct {
		TakenAt time.Time                  `json:"taken_at"`
		Slots   map[string]json.RawMessage `json:"slots"`
	}{TakenAt: taken, Slots: slots})
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}

	key := "backups/" + taken.Format("20060102T150405Z") + ".json"
	if err := s.uploader.Upload(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("upload backup: %w", err)
	}
	return &Backup{Key: key, Slots: len(slots)}, nil
}
