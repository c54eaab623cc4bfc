package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/flicky/storefront/internal/middleware"
)

type Handlers struct {
	Health    *HealthHandler
	Product   *ProductHandler
	Banner    *BannerHandler
	Wishlist  *WishlistHandler
	Order     *OrderHandler
	Auth      *AuthHandler
	Admin     *AdminHandler
	Assistant *AssistantHandler
}

type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
}

func NewRouter(h Handlers, cfg RouterConfig, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), corsMiddleware(cfg.AllowedOrigins))

	router.GET("/healthz", h.Health.Healthz)
	router.GET("/readyz", h.Health.Readyz)

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.GetByID)
		products.POST("/:id/reviews", h.Product.AddReview)

		v1.GET("/banners", h.Banner.Active)

		wishlist := v1.Group("/wishlist")
		wishlist.GET("", h.Wishlist.Get)
		wishlist.POST("/:id", h.Wishlist.Toggle)

		checkout := v1.Group("/checkout")
		checkout.POST("/quote", h.Order.Quote)
		checkout.POST("/orders", h.Order.PlaceOrder)

		v1.GET("/account/orders", h.Order.MyOrders)

		auth := v1.Group("/auth")
		auth.POST("/code", h.Auth.SendCode)
		auth.POST("/code/confirm", h.Auth.ConfirmCode)
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/verify", h.Auth.VerifyEmail)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/session", h.Auth.Session)

		v1.POST("/assistant/chat", h.Assistant.Chat)

		v1.POST("/admin/login", h.Admin.Login)
		admin := v1.Group("/admin", middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminOnly())
		{
			admin.GET("/products", h.Product.Search)
			admin.POST("/products", h.Product.Create)
			admin.PUT("/products/:id", h.Product.Update)
			admin.DELETE("/products/:id", h.Product.Delete)

			admin.GET("/banners", h.Banner.List)
			admin.POST("/banners", h.Banner.Create)
			admin.PUT("/banners/:id", h.Banner.Update)
			admin.DELETE("/banners/:id", h.Banner.Delete)
			admin.POST("/banners/:id/toggle", h.Banner.Toggle)

			admin.GET("/orders", h.Order.List)
			admin.GET("/orders/:id", h.Order.Get)
			admin.PATCH("/orders/:id/status", h.Order.UpdateStatus)

			admin.GET("/users", h.Admin.Users)
			admin.PATCH("/users/:email/verified", h.Admin.SetVerified)

			admin.GET("/stats", h.Admin.Stats)
			admin.POST("/backups", h.Admin.Backup)

			admin.POST("/assistant/description", h.Assistant.EnhanceDescription)
			admin.POST("/assistant/tagline", h.Assistant.SuggestTagline)
			admin.POST("/assistant/banner", h.Assistant.SuggestBannerCopy)
		}
	}

	return router
}

// corsMiddleware allows the listed origins; "*" allows any.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = true
		}
	}
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowed["*"] || allowed[origin]
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
