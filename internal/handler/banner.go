package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/storefront/internal/dto"
	"github.com/flicky/storefront/internal/service"
)

type BannerHandler struct {
	bannerService *service.BannerService
}

func NewBannerHandler(bannerService *service.BannerService) *BannerHandler {
	return &BannerHandler{bannerService: bannerService}
}

// Active serves the storefront slider.
func (h *BannerHandler) Active(c *gin.Context) {
	banners, err := h.bannerService.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, banners)
}

func (h *BannerHandler) List(c *gin.Context) {
	banners, err := h.bannerService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, banners)
}

func (h *BannerHandler) Create(c *gin.Context) {
	h.save(c, "", http.StatusCreated)
}

func (h *BannerHandler) Update(c *gin.Context) {
	h.save(c, c.Param("id"), http.StatusOK)
}

func (h *BannerHandler) save(c *gin.Context, id string, status int) {
	var req dto.BannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	banner, err := h.bannerService.Save(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, banner)
}

func (h *BannerHandler) Delete(c *gin.Context) {
	if err := h.bannerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BannerHandler) Toggle(c *gin.Context) {
	banner, err := h.bannerService.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}
