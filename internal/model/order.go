package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

var statusRank = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusShipped:   1,
	OrderStatusDelivered: 2,
}

func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether next lies strictly after s.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	cur, ok := statusRank[s]
	if !ok {
		return false
	}
	n, ok := statusRank[next]
	return ok && n > cur
}

type PaymentMethod string

const (
	PaymentRazorpay PaymentMethod = "Razorpay"
	PaymentPayPal   PaymentMethod = "PayPal"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentRazorpay || m == PaymentPayPal
}

type Address struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type Order struct {
	ID                string          `json:"id"`
	CustomerName      string          `json:"customerName"`
	CustomerEmail     string          `json:"customerEmail"`
	ShippingAddress   Address         `json:"shippingAddress"`
	Items             []Product       `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Discount          decimal.Decimal `json:"discount"`
	ShippingCost      decimal.Decimal `json:"shippingCost"`
	Total             decimal.Decimal `json:"total"`
	Status            OrderStatus     `json:"status"`
	PaymentMethod     PaymentMethod   `json:"paymentMethod"`
	Date              time.Time       `json:"date"`
	EstimatedDelivery string          `json:"estimatedDelivery"`
}

// TotalConsistent checks total == subtotal - discount + shippingCost.
func (o *Order) TotalConsistent() bool {
	return o.Total.Equal(o.Subtotal.Sub(o.Discount).Add(o.ShippingCost))
}

// Clone deep-copies the order including every item snapshot.
func (o Order) Clone() Order {
	out := o
	if o.Items != nil {
		out.Items = make([]Product, len(o.Items))
		for i, item := range o.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}
