// internal/router/router.go
package router

import (
	"net/http"
	"path/filepath"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vapeshop/vapeshop-backend/internal/config"
	"github.com/vapeshop/vapeshop-backend/internal/handlers"
	"github.com/vapeshop/vapeshop-backend/internal/kvstore"
	"github.com/vapeshop/vapeshop-backend/internal/middleware"
	"github.com/vapeshop/vapeshop-backend/internal/repository"
	"github.com/vapeshop/vapeshop-backend/internal/services"
)

func Initialize(store kvstore.Store, cfg *config.Config) *gin.Engine {
	adminIDs := cfg.Admin.IDSet()

	// Initialize repositories
	alloc := repository.NewAllocator(store)
	statsAggregator := repository.NewStatsAggregator(store)
	products := repository.NewProductRepository(store, alloc)
	orders := repository.NewOrderRepository(store, alloc, statsAggregator)
	users := repository.NewUserRepository(store, adminIDs)
	promos := repository.NewPromoRepository(store)

	// Initialize services
	catalogService := services.NewCatalogService(products)
	orderService := services.NewOrderService(orders, adminIDs)
	userService := services.NewUserService(users, cfg.Referral.Bonus)
	promoService := services.NewPromoService(promos)
	adminService := services.NewAdminService(statsAggregator, users)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	userHandler := handlers.NewUserHandler(userService, adminIDs)
	promoHandler := handlers.NewPromoHandler(promoService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.Default())
	r.Use(middleware.Metrics())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.Identity())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", func(c *gin.Context) {
		metrics.WritePrometheus(c.Writer, true)
	})

	// Static frontend
	r.StaticFile("/", filepath.Join(cfg.Server.StaticDir, "index.html"))
	r.Static("/static", cfg.Server.StaticDir)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/products", productHandler.GetProducts)
		api.POST("/products", middleware.AdminRequired(adminIDs), productHandler.CreateProduct)
		api.PUT("/products/:id", middleware.AdminRequired(adminIDs), productHandler.UpdateProduct)
		api.DELETE("/products/:id", middleware.AdminRequired(adminIDs), productHandler.DeleteProduct)

		api.POST("/orders", middleware.CheckoutRateLimit(), orderHandler.CreateOrder)
		api.GET("/orders", middleware.AdminRequired(adminIDs), orderHandler.GetOrders)
		api.GET("/orders/user/:userId", orderHandler.GetUserOrders)
		api.PATCH("/orders/:id/status", orderHandler.UpdateOrderStatus)

		api.GET("/users/:id", userHandler.GetUser)
		api.PUT("/users/:id", userHandler.UpdateUser)
		api.POST("/users/:id/referral", userHandler.ApplyReferral)

		api.GET("/promos", middleware.AdminRequired(adminIDs), promoHandler.GetPromos)
		api.POST("/promos", middleware.AdminRequired(adminIDs), promoHandler.CreatePromo)
		api.POST("/promos/apply", promoHandler.ApplyPromo)

		api.GET("/stats", middleware.AdminRequired(adminIDs), adminHandler.GetStats)
		api.POST("/broadcast", middleware.AdminRequired(adminIDs), adminHandler.Broadcast)
	}

	return r
}
