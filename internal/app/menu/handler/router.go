package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"muzzatheory/internal/app/menu/config"
	"muzzatheory/internal/app/menu/entity"
	"muzzatheory/pkg/logger"
	"muzzatheory/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(menuHandler *MenuHandler, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("menu-service"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Информационный эндпоинт сервиса
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, entity.InfoResponse{
			Message:     "Muzza Theory",
			Status:      "running",
			Environment: cfg.Environment,
		})
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "menu-service",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	categories := router.Group("/categories")
	{
		categories.GET("", menuHandler.GetCategories)
		categories.GET("/:id", menuHandler.GetCategory)
		categories.POST("", menuHandler.CreateCategory)
		categories.PATCH("/:id", menuHandler.UpdateCategory)
		categories.DELETE("/:id", menuHandler.DeleteCategory)
	}

	products := router.Group("/products")
	{
		products.GET("", menuHandler.GetProducts)
		products.GET("/:id", menuHandler.GetProduct)
		products.POST("", menuHandler.CreateProduct)
		products.PATCH("/:id", menuHandler.UpdateProduct)
		products.DELETE("/:id", menuHandler.DeleteProduct)
	}

	offers := router.Group("/offers")
	{
		offers.GET("", menuHandler.GetOffers)
		offers.GET("/:id", menuHandler.GetOffer)
		offers.POST("", menuHandler.CreateOffer)
		offers.PATCH("/:id", menuHandler.UpdateOffer)
		offers.DELETE("/:id", menuHandler.DeleteOffer)
	}

	return router
}
