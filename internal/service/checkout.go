package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flicky/storefront/internal/dto"
	"github.com/flicky/storefront/internal/model"
	"github.com/flicky/storefront/internal/repository"
	"github.com/flicky/storefront/internal/worker"
)

var (
	ErrInvalidPromo          = errors.New("promo code not recognised")
	ErrEmptyOrder            = errors.New("order has no items")
	ErrIncompleteDestination = errors.New("name, email, address and city are required")
	ErrInvalidPaymentMethod  = errors.New("unsupported payment method")
)

const (
	orderIDAttempts = 5
	orderIDLength   = 9
	orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	internationalShipping = decimal.NewFromInt(45)
	firstOrderDiscount    = decimal.NewFromInt(25)
	om10Rate              = decimal.NewFromFloat(0.1)
)

type Quote struct {
	Items             []model.Product
	Subtotal          decimal.Decimal
	Discount          decimal.Decimal
	ShippingCost      decimal.Decimal
	Total             decimal.Decimal
	EstimatedDelivery string
}

type CheckoutService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	notifier    worker.Notifier
	log         *slog.Logger
	now         func() time.Time
	newOrderID  func() (string, error)
}

func NewCheckoutService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	notifier worker.Notifier,
	log *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
		newOrderID:  randomOrderID,
	}
}

// Quote prices the given product ids. An id listed twice is bought twice.
func (s *CheckoutService) Quote(ctx context.Context, productIDs []string, country, promo string) (*Quote, error) {
	if len(productIDs) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]model.Product, 0, len(productIDs))
	subtotal := decimal.Zero
	for _, id := range productIDs {
		product, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get product: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		items = append(items, product.Clone())
		subtotal = subtotal.Add(product.Price)
	}

	discount, err := promoDiscount(promo, subtotal)
	if err != nil {
		return nil, err
	}
	shipping := shippingCost(country)

	return &Quote{
		Items:             items,
		Subtotal:          subtotal,
		Discount:          discount,
		ShippingCost:      shipping,
		Total:             subtotal.Sub(discount).Add(shipping),
		EstimatedDelivery: deliveryWindow(s.now(), country),
	}, nil
}

func (s *CheckoutService) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (*model.Order, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Address.Line1) == "" || strings.TrimSpace(req.Address.City) == "" {
		return nil, ErrIncompleteDestination
	}
	if !req.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	quote, err := s.Quote(ctx, req.ProductIDs, req.Address.Country, req.PromoCode)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		CustomerName:  strings.TrimSpace(req.Name),
		CustomerEmail: normalizeEmail(req.Email),
		ShippingAddress: model.Address{
			Line1:   req.Address.Line1,
			City:    req.Address.City,
			State:   req.Address.State,
			Zip:     req.Address.Zip,
			Country: req.Address.Country,
		},
		Items:             quote.Items,
		Subtotal:          quote.Subtotal,
		Discount:          quote.Discount,
		ShippingCost:      quote.ShippingCost,
		Total:             quote.Total,
		Status:            model.OrderStatusPending,
		PaymentMethod:     req.PaymentMethod,
		Date:              s.now().UTC(),
		EstimatedDelivery: quote.EstimatedDelivery,
	}

	if err := s.createWithFreshID(ctx, order); err != nil {
		return nil, err
	}

	err = s.notifier.Notify(ctx, model.Notification{
		ID:        uuid.NewString(),
		Kind:      model.NotificationOrderPlaced,
		Email:     order.CustomerEmail,
		OrderID:   order.ID,
		CreatedAt: order.Date,
	})
	if err != nil {
		s.log.Error("order confirmation not sent", "order_id", order.ID, "error", err)
	}
	return order, nil
}

func (s *CheckoutService) createWithFreshID(ctx context.Context, order *model.Order) error {
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		id, err := s.newOrderID()
		if err != nil {
			return fmt.Errorf("generate order id: %w", err)
		}
		order.ID = id
		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("create order: %w", err)
		}
	}
	return fmt.Errorf("create order: no free id after %d attempts: %w", orderIDAttempts, repository.ErrConflict)
}

// promoDiscount applies OM10 (10% off, rounded down) or FIRST (25 off).
// The discount never exceeds the subtotal.
func promoDiscount(code string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	var discount decimal.Decimal
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "":
		return decimal.Zero, nil
	case "OM10":
		discount = subtotal.Mul(om10Rate).Floor()
	case "FIRST":
		discount = firstOrderDiscount
	default:
		return decimal.Zero, ErrInvalidPromo
	}
	return decimal.Min(discount, subtotal), nil
}

func isDomestic(country string) bool {
	return strings.EqualFold(strings.TrimSpace(country), "india")
}

func shippingCost(country string) decimal.Decimal {
	if isDomestic(country) {
		return decimal.Zero
	}
	return internationalShipping
}

// deliveryWindow renders e.g. "Mar 4 - Mar 6, 2026".
func deliveryWindow(from time.Time, country string) string {
	minDays, maxDays := 7, 12
	if isDomestic(country) {
		minDays, maxDays = 3, 5
	}
	first := from.AddDate(0, 0, minDays)
	last := from.AddDate(0, 0, maxDays)
	return first.Format("Jan 2") + " - " + last.Format("Jan 2, 2006")
}

func randomOrderID() (string, error) {
	var b strings.Builder
	b.WriteString("RAK-")
	limit := big.NewInt(int64(len(orderIDAlphabet)))
	for i := 0; i < orderIDLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b.WriteByte(orderIDAlphabet[n.Int64()])
	}
	return b.String(), nil
}
