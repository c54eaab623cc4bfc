package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Slots hold prices as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid record")

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Verified bool   `json:"verified"`
	Role     Role   `json:"role"`
}

type Banner struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Link     string `json:"link,omitempty"`
	Active   bool   `json:"active"`
}

type NotificationKind string

const (
	NotificationVerificationCode NotificationKind = "verification_code"
	NotificationOrderPlaced      NotificationKind = "order_placed"
)

// Notification is what the dispatch queue carries.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Email     string           `json:"email"`
	Code      string           `json:"code,omitempty"`
	OrderID   string           `json:"order_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
