package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/storefront/internal/dto"
	"github.com/flicky/storefront/internal/service"
)

type WishlistHandler struct {
	wishlistService *service.WishlistService
}

func NewWishlistHandler(wishlistService *service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

func (h *WishlistHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	ids, err := h.wishlistService.IDs(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	products, err := h.wishlistService.Products(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WishlistResponse{IDs: ids, Products: products})
}

// Toggle adds the product or, if it is already listed, removes it.
func (h *WishlistHandler) Toggle(c *gin.Context) {
	ids, err := h.wishlistService.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}
