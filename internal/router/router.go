// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/lojinha/lojinha-backend/internal/cache"
	"github.com/lojinha/lojinha-backend/internal/config"
	"github.com/lojinha/lojinha-backend/internal/handlers"
	"github.com/lojinha/lojinha-backend/internal/middleware"
	"github.com/lojinha/lojinha-backend/internal/services"
	"github.com/lojinha/lojinha-backend/internal/themes"
	"github.com/lojinha/lojinha-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Public page cache is optional; without Redis every lookup hits Postgres.
	var pageCache *cache.PageCache
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			logrus.WithError(err).Warn("Redis unavailable, serving public pages without cache")
		} else {
			pageCache = cache.NewPageCache(redisClient, time.Duration(cfg.Redis.PageTTL)*time.Second)
		}
	}

	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	storefrontService := services.NewStorefrontService(db, cfg, pageCache)
	pageService := services.NewPageService(db)
	billingService := services.NewBillingService(db, cfg)
	activityService := services.NewActivityService(db)
	ogService := services.NewOGService(storefrontService, cfg.Frontend.BaseURL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	storefrontHandler := handlers.NewStorefrontHandler(storefrontService, storageService)
	pageHandler := handlers.NewPageHandler(pageService)
	billingHandler := handlers.NewBillingHandler(billingService)
	accountHandler := handlers.NewAccountHandler(activityService)
	publicHandler := handlers.NewPublicHandler(storefrontService, ogService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))
	r.Use(middleware.CrawlerRewrite(r))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Public storefront surface
	r.GET("/u/:username", publicHandler.GetStorefront)
	r.GET("/og/:username", publicHandler.GetPreview)
	r.GET("/og/:username/card.svg", publicHandler.GetPreviewCard)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Storefront editor routes
		storefront := v1.Group("/storefront")
		storefront.Use(middleware.AuthRequired())
		{
			storefront.GET("", storefrontHandler.GetDraft)
			storefront.PATCH("", storefrontHandler.PatchDraft)
			storefront.POST("/save", storefrontHandler.Save)
			storefront.POST("/refresh", storefrontHandler.Refresh)
			storefront.POST("/upload", middleware.UploadRateLimit(), storefrontHandler.UploadImage)

			storefront.POST("/products", storefrontHandler.AddProduct)
			storefront.PATCH("/products/:productId", storefrontHandler.UpdateProduct)
			storefront.DELETE("/products/:productId", storefrontHandler.RemoveProduct)
			storefront.PATCH("/products/:productId/kits/:kitId", storefrontHandler.UpdateProductKit)
		}

		// Page editor routes
		pages := v1.Group("/pages")
		pages.Use(middleware.AuthRequired())
		{
			pages.POST("", pageHandler.CreatePage)
			pages.GET("", pageHandler.ListPages)
			pages.GET("/:pageId", pageHandler.GetPage)
			pages.PATCH("/:pageId", pageHandler.UpdatePage)

			pages.GET("/:pageId/components", pageHandler.ListComponents)
			pages.POST("/:pageId/components", pageHandler.AddComponent)
			pages.PUT("/:pageId/components/order", pageHandler.ReorderComponents)
			pages.PATCH("/:pageId/components/:componentId", pageHandler.UpdateComponent)
			pages.DELETE("/:pageId/components/:componentId", pageHandler.DeleteComponent)
		}

		// Billing routes
		billing := v1.Group("/billing")
		billing.Use(middleware.AuthRequired())
		{
			billing.POST("/checkout", billingHandler.CreateCheckout)
			billing.GET("/checkout/:sessionId", billingHandler.GetCheckoutStatus)
		}

		// Account routes
		account := v1.Group("/account")
		account.Use(middleware.AuthRequired())
		{
			account.GET("/activity", accountHandler.GetActivity)
		}

		// Theme catalog (public)
		v1.GET("/themes", getThemesHandler)
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}

func getThemesHandler(c *gin.Context) {
	catalog := make([]themes.Theme, 0)
	for _, id := range themes.IDs() {
		catalog = append(catalog, themes.Get(id))
	}

	utils.SuccessResponse(c, gin.H{
		"themes": catalog,
	})
}
