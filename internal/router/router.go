package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/loftmebel/backend/internal/config"
	"github.com/loftmebel/backend/internal/handlers"
	"github.com/loftmebel/backend/internal/middleware"
	"github.com/loftmebel/backend/internal/services"
	"github.com/loftmebel/backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Services
	mailer := services.NewMailer(cfg.Email)
	discountService := services.NewDiscountService(db)
	catalogService := services.NewCatalogService(db, discountService)
	categoryService := services.NewCategoryService(db)
	attributeService := services.NewAttributeService(db, categoryService)
	authService := services.NewAuthService(db, cfg, mailer)
	paymentService := services.NewPaymentService(cfg.Payment)
	storefrontService := services.NewStorefrontService(db)

	// Handlers
	productHandler := handlers.NewProductHandler(catalogService,
		cfg.Catalog.TopCount, cfg.Catalog.RecommendedCount, cfg.Catalog.LatestCount)
	categoryHandler := handlers.NewCategoryHandler(categoryService, catalogService)
	attributeHandler := handlers.NewAttributeHandler(attributeService)
	authHandler := handlers.NewAuthHandler(authService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	storefrontHandler := handlers.NewStorefrontHandler(storefrontService, catalogService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Catalog
	categories := r.Group("/categories")
	{
		categories.GET("/", categoryHandler.List)
		categories.GET("/:key/products/", categoryHandler.Products)
		categories.GET("/:key/prices/", categoryHandler.Prices)
	}

	products := r.Group("/products")
	{
		products.GET("/", productHandler.List)
		products.GET("/top/", productHandler.Top)
		products.GET("/discounted/", productHandler.Discounted)
		products.GET("/latest/", productHandler.Latest)
		products.GET("/:key/", productHandler.Retrieve)
		products.GET("/:key/recommended/", productHandler.Recommended)
		products.POST("/:key/reviews/", middleware.OptionalAuth(), storefrontHandler.CreateReview)
	}

	r.GET("/colors/", attributeHandler.Colors)
	r.GET("/size/", attributeHandler.Sizes)
	r.GET("/banners/", storefrontHandler.Banners)

	// Account
	auth := r.Group("/")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/check-email/", authHandler.CheckEmail)
		auth.POST("/check-otp/", authHandler.CheckOTP)
		auth.POST("/sign-up/", authHandler.SignUp)
		auth.POST("/login/", authHandler.Login)
	}
	r.GET("/user/me/", middleware.AuthRequired(), authHandler.Me)

	// Storefront
	wishlist := r.Group("/wishlist")
	wishlist.Use(middleware.OptionalAuth())
	{
		wishlist.GET("/", storefrontHandler.Wishlist)
		wishlist.POST("/", storefrontHandler.AddToWishlist)
	}
	r.POST("/feedback/", storefrontHandler.CreateFeedback)

	// Payments
	r.POST("/payments/stripe/", paymentHandler.CreateCheckout)

	return r
}
