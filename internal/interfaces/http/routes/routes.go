// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/cart"
	"github.com/your-org/pos-backend/internal/infrastructure/session"
	"github.com/your-org/pos-backend/internal/interfaces/http/handlers"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupProductRoutes sets up product CRUD routes
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("", productHandler.CreateProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupClientRoutes sets up client CRUD routes
func SetupClientRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	clientHandler := handlers.NewClientHandler(db, cfg)

	clients := rg.Group("/clients")
	clients.Use(middleware.AuthMiddleware(cfg))
	{
		clients.GET("", clientHandler.GetClients)
		clients.GET("/:id", clientHandler.GetClient)
		clients.POST("", clientHandler.CreateClient)
		clients.PUT("/:id", clientHandler.UpdateClient)
		clients.DELETE("/:id", clientHandler.DeleteClient)
	}
}

// SetupSaleRoutes sets up the sale workflow and the sale REST surface
func SetupSaleRoutes(rg *gin.RouterGroup, db *gorm.DB, store cart.SessionStore, cfg *config.Config) {
	saleHandler := handlers.NewSaleHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, store, cfg)

	sales := rg.Group("/sales")
	sales.Use(middleware.AuthMiddleware(cfg))
	{
		// Cart workflow. Registered before the :id routes so the
		// literal segments win.
		sales.GET("/new", cartHandler.NewSale)
		sales.POST("/new", cartHandler.StartSale)
		sales.GET("/cart", cartHandler.GetCart)
		sales.POST("/cart", cartHandler.AddItem)
		sales.POST("/cart/remove/:index", cartHandler.RemoveItem)
		sales.POST("/confirm", cartHandler.ConfirmSale)
		sales.GET("/cancel", cartHandler.CancelSale)
		sales.POST("/cancel", cartHandler.CancelSale)

		// REST surface
		sales.GET("", saleHandler.GetSales)
		sales.POST("", saleHandler.CreateSale)
		sales.GET("/:id", saleHandler.GetSale)
		sales.PUT("/:id", saleHandler.UpdateSale)
		sales.DELETE("/:id", saleHandler.DeleteSale)

		// Post-commit editing
		sales.GET("/:id/edit", saleHandler.EditSale)
		sales.POST("/:id/edit", saleHandler.AddSaleDetail)
		sales.POST("/:id/detail/:detail_id/delete", saleHandler.RemoveSaleDetail)
		sales.GET("/:id/receipt", saleHandler.GetReceipt)
	}

	details := rg.Group("/saledetails")
	details.Use(middleware.AuthMiddleware(cfg))
	{
		details.GET("", saleHandler.GetSaleDetails)
		details.POST("", saleHandler.CreateSaleDetail)
		details.GET("/:id", saleHandler.GetSaleDetail)
		details.PUT("/:id", saleHandler.UpdateSaleDetail)
		details.DELETE("/:id", saleHandler.DeleteSaleDetail)
	}
}

// SetupAnalyticsRoutes sets up the dashboard route
func SetupAnalyticsRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg)

	dashboard := rg.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(cfg))
	{
		dashboard.GET("", analyticsHandler.GetDashboard)
	}
}

// SetupRoutes configures all application routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	store := session.NewRedisStore(redisClient, cfg.Session.TTL)

	SetupAuthRoutes(rg, db, cfg)
	SetupProductRoutes(rg, db, cfg)
	SetupClientRoutes(rg, db, cfg)
	SetupSaleRoutes(rg, db, store, cfg)
	SetupAnalyticsRoutes(rg, db, cfg)
}
