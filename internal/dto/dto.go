package dto

import (
	"github.com/shopspring/decimal"

	"github.com/flicky/storefront/internal/model"
)

// --- Catalog ---

type ListProductsRequest struct {
	Category string `form:"category" binding:"omitempty,oneof=Audio Wearable Mobile Home"`
	Search   string `form:"search"`
}

type ProductRequest struct {
	Name            string          `json:"name" binding:"required"`
	Tagline         string          `json:"tagline"`
	Description     string          `json:"description"`
	LongDescription string          `json:"longDescription"`
	Price           decimal.Decimal `json:"price"`
	Category        model.Category  `json:"category" binding:"required,oneof=Audio Wearable Mobile Home"`
	ImageURL        string          `json:"imageUrl"`
	Gallery         []string        `json:"gallery"`
	Features        []string        `json:"features"`
	Mukhi           model.Mukhi     `json:"mukhi"`
	Origin          string          `json:"origin"`
	Size            string          `json:"size"`
	Vibration       string          `json:"vibration"`
	Certification   string          `json:"certification"`
	Stock           *int            `json:"stock" binding:"omitempty,min=0"`
	Material        string          `json:"material"`
	Weight          string          `json:"weight"`
	PlanetaryRuler  string          `json:"planetaryRuler"`
	SpecificMantra  string          `json:"specificMantra"`
}

type ReviewRequest struct {
	UserName string `json:"userName" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment"`
}

type SearchRequest struct {
	Term string `form:"q"`
}

// --- Banner ---

type BannerRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Link     string `json:"link"`
	Active   *bool  `json:"active"`
}

// --- Wishlist ---

type WishlistResponse struct {
	IDs      []string        `json:"ids"`
	Products []model.Product `json:"products"`
}

// --- Checkout ---

type QuoteRequest struct {
	ProductIDs []string `json:"productIds" binding:"required,min=1"`
	Country    string   `json:"country" binding:"required"`
	PromoCode  string   `json:"promoCode"`
}

type QuoteResponse struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	Discount          decimal.Decimal `json:"discount"`
	ShippingCost      decimal.Decimal `json:"shippingCost"`
	Total             decimal.Decimal `json:"total"`
	EstimatedDelivery string          `json:"estimatedDelivery"`
}

type AddressRequest struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country" binding:"required"`
}

type PlaceOrderRequest struct {
	ProductIDs    []string            `json:"productIds" binding:"required,min=1"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Address       AddressRequest      `json:"shippingAddress"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod" binding:"required,oneof=Razorpay PayPal"`
	PromoCode     string              `json:"promoCode"`
}

// --- Order ---

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required,oneof=pending shipped delivered"`
}

type StatsResponse struct {
	Revenue       decimal.Decimal `json:"revenue"`
	Orders        int             `json:"orders"`
	PendingOrders int             `json:"pendingOrders"`
	Products      int             `json:"products"`
	Users         int             `json:"users"`
}

// --- Auth ---

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ConfirmCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type SignupRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

type VerifyEmailRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Code    string `json:"code" binding:"required,len=6,numeric"`
	Purpose string `json:"purpose" binding:"required,oneof=signup change_email"`
}

// --- Admin ---

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type SetVerifiedRequest struct {
	// Verified left out flips the current value.
	Verified *bool `json:"verified"`
}

type BackupResponse struct {
	Key   string `json:"key"`
	Slots int    `json:"slots"`
}

// --- Assistant ---

type ChatTurn struct {
	Role string `json:"role" binding:"required,oneof=user model"`
	Text string `json:"text"`
}

type ChatRequest struct {
	History []ChatTurn `json:"history" binding:"dive"`
	Message string     `json:"message" binding:"required"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type CopyRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type BannerCopyRequest struct {
	Context string `json:"context" binding:"required"`
}

type BannerCopyResponse struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}
