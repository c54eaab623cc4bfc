package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/storefront/internal/dto"
	"github.com/flicky/storefront/internal/service"
)

type OrderHandler struct {
	checkoutService *service.CheckoutService
	orderService    *service.OrderService
	authService     *service.AuthService
}

func NewOrderHandler(checkoutService *service.CheckoutService, orderService *service.OrderService, authService *service.AuthService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService, orderService: orderService, authService: authService}
}

func (h *OrderHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	q, err := h.checkoutService.Quote(c.Request.Context(), req.ProductIDs, req.Country, req.PromoCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuoteResponse{
		Subtotal:          q.Subtotal,
		Discount:          q.Discount,
		ShippingCost:      q.ShippingCost,
		Total:             q.Total,
		EstimatedDelivery: q.EstimatedDelivery,
	})
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.checkoutService.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// MyOrders lists the orders placed with the signed-in user's email.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.authService.CurrentUser(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	orders, err := h.orderService.ListByCustomer(ctx, user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orderService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.orderService.AdvanceStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
