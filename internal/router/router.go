package router

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	fulfillmenthandlers "github.com/storefront-next/internal/http/handlers/fulfillment"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按店面/履约分组）
	publicHandler := publichandlers.New(c)
	fulfillmentHandler := fulfillmenthandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	redisClient := cache.Client()
	checkoutRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.Security.CheckoutRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CheckoutRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.CheckoutRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开商品目录
		catalog := apiV1.Group("/public")
		{
			catalog.GET("/products", publicHandler.GetProducts)
			catalog.GET("/products/:id", publicHandler.GetProduct)
		}

		// 店面接口（登录用户或匿名会话）
		store := apiV1.Group("")
		store.Use(OwnerMiddleware(cfg.JWT.SecretKey))
		{
			store.GET("/cart", publicHandler.GetCart)
			store.GET("/cart/summary", publicHandler.GetCartSummary)
			store.POST("/cart/items", publicHandler.AddCartItem)
			store.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			store.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			store.DELETE("/cart", publicHandler.ClearCart)
			store.POST("/checkout", RateLimitMiddleware(redisClient, checkoutRule, KeyByOwner), publicHandler.Checkout)
			store.GET("/orders", publicHandler.GetOrders)
			store.GET("/orders/:order_no", publicHandler.GetOrder)
			store.POST("/orders/:order_no/cancel", publicHandler.CancelOrder)
		}

		// 履约接口（需 staff 角色令牌）
		ops := apiV1.Group("/fulfillment")
		ops.Use(StaffAuthMiddleware(cfg.JWT.SecretKey))
		{
			ops.GET("/orders", fulfillmentHandler.GetOrders)
			ops.PUT("/orders/:order_no/status", fulfillmentHandler.UpdateOrderStatus)
			ops.POST("/products", fulfillmentHandler.CreateProduct)
			ops.POST("/inventory/:product_id/adjust", fulfillmentHandler.AdjustInventory)
			ops.GET("/inventory/:product_id/logs", fulfillmentHandler.GetInventoryLogs)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
