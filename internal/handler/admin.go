package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/storefront/internal/dto"
	"github.com/flicky/storefront/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.adminService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdminLoginResponse{Token: token})
}

func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.adminService.Users(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// SetVerified overrides a user's verified flag. An empty body toggles it.
func (h *AdminHandler) SetVerified(c *gin.Context) {
	var req dto.SetVerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	user, err := h.adminService.SetUserVerified(c.Request.Context(), c.Param("email"), req.Verified)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		Revenue:       stats.Revenue,
		Orders:        stats.Orders,
		PendingOrders: stats.PendingOrders,
		Products:      stats.Products,
		Users:         stats.Users,
	})
}

func (h *AdminHandler) Backup(c *gin.Context) {
	backup, err := h.adminService.Backup(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.BackupResponse{Key: backup.Key, Slots: backup.Slots})
}
