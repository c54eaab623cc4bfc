package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMukhi_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Mukhi
		out  string
	}{
		{"number", `5`, "5", `5`},
		{"label", `"1-14 Complex"`, "1-14 Complex", `"1-14 Complex"`},
		{"null", `null`, "", `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Mukhi
			require.NoError(t, json.Unmarshal([]byte(tt.in), &m))
			assert.Equal(t, tt.want, m)

			b, err := json.Marshal(m)
			require.NoError(t, err)
			assert.Equal(t, tt.out, string(b))
		})
	}
}

func TestProduct_JSONShape(t *testing.T) {
	p := Product{
		ID: "p1", Name: "Ek Mukhi Rudraksha", Price: decimal.NewFromInt(2450),
		Category: CategoryHome, Features: []string{"Mental Clarity"}, Mukhi: "1", Stock: IntPtr(2),
	}
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id":"p1","name":"Ek Mukhi Rudraksha","tagline":"","description":"",
		"price":2450,"category":"Home","imageUrl":"","features":["Mental Clarity"],
		"mukhi":1,"stock":2
	}`, string(b))
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{Name: "Siddh Mala", Price: decimal.NewFromInt(4500), Category: CategoryHome}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *Product)
	}{
		{"empty name", func(p *Product) { p.Name = " " }},
		{"negative price", func(p *Product) { p.Price = decimal.NewFromInt(-1) }},
		{"unknown category", func(p *Product) { p.Category = "Kitchen" }},
		{"negative stock", func(p *Product) { p.Stock = IntPtr(-3) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), ErrInvalid)
		})
	}
}

func TestProduct_CloneSharesNothing(t *testing.T) {
	p := Product{
		ID: "p2", Gallery: []string{"a"}, Features: []string{"f"},
		Reviews: []Review{{ID: "r1", Rating: 5}}, Stock: IntPtr(8),
	}
	c := p.Clone()
	c.Gallery[0] = "changed"
	c.Features[0] = "changed"
	c.Reviews[0].Rating = 1
	*c.Stock = 0

	assert.Equal(t, "a", p.Gallery[0])
	assert.Equal(t, "f", p.Features[0])
	assert.Equal(t, 5, p.Reviews[0].Rating)
	assert.Equal(t, 8, *p.Stock)
}

func TestOrderStatus_CanAdvanceTo(t *testing.T) {
	assert.True(t, OrderStatusPending.CanAdvanceTo(OrderStatusShipped))
	assert.True(t, OrderStatusPending.CanAdvanceTo(OrderStatusDelivered))
	assert.True(t, OrderStatusShipped.CanAdvanceTo(OrderStatusDelivered))
	assert.False(t, OrderStatusShipped.CanAdvanceTo(OrderStatusPending))
	assert.False(t, OrderStatusDelivered.CanAdvanceTo(OrderStatusDelivered))
	assert.False(t, OrderStatusPending.CanAdvanceTo("lost"))
}

func TestOrder_TotalConsistent(t *testing.T) {
	tests := []struct {
		subtotal, discount, shipping, total int64
		ok                                  bool
	}{
		{900, 0, 45, 945, true},
		{2450, 245, 0, 2205, true},
		{125, 25, 45, 145, true},
		{900, 0, 45, 900, false},
	}
	for _, tt := range tests {
		o := Order{
			Subtotal:     decimal.NewFromInt(tt.subtotal),
			Discount:     decimal.NewFromInt(tt.discount),
			ShippingCost: decimal.NewFromInt(tt.shipping),
			Total:        decimal.NewFromInt(tt.total),
		}
		assert.Equal(t, tt.ok, o.TotalConsistent(), "total %d", tt.total)
	}
}
