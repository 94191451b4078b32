package provider

import (
	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/shopspring/decimal"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo     repository.ProductRepository
	CartRepo        repository.CartRepository
	CouponRepo      repository.CouponRepository
	CouponUsageRepo repository.CouponUsageRepository
	OrderRepo       repository.OrderRepository
	InventoryLogs   *repository.GormInventoryLogRepository

	// Services
	ProductService   *service.ProductService
	CartService      *service.CartService
	CouponService    *service.CouponService
	PricingService   *service.PricingService
	InventoryService *service.InventoryService
	OrderService     *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.InventoryLogs = repository.NewInventoryLogRepository(db)
}

func (c *Container) initServices() {
	rules := buildPricingRules(c.Config.Pricing)

	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo)
	c.PricingService = service.NewPricingService(c.CartService, c.CouponService, rules)
	c.InventoryService = service.NewInventoryService(c.ProductRepo, c.InventoryLogs, c.QueueClient)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.CartRepo,
		c.ProductRepo,
		c.CouponRepo,
		c.CouponUsageRepo,
		c.InventoryLogs,
		c.InventoryService,
		rules,
	)
}

// buildPricingRules 从配置构建计价规则，配置非法时退回默认值。
func buildPricingRules(cfg config.PricingConfig) service.PricingRules {
	rules := service.DefaultPricingRules()
	if threshold, err := models.NewMoneyFromString(cfg.FreeShippingThreshold); err == nil {
		rules.FreeShippingThreshold = threshold
	} else if cfg.FreeShippingThreshold != "" {
		logger.Warnw("pricing_free_shipping_threshold_invalid", "value", cfg.FreeShippingThreshold)
	}
	if fee, err := models.NewMoneyFromString(cfg.ShippingFee); err == nil {
		rules.ShippingFee = fee
	} else if cfg.ShippingFee != "" {
		logger.Warnw("pricing_shipping_fee_invalid", "value", cfg.ShippingFee)
	}
	if rate, err := decimal.NewFromString(cfg.TaxRate); err == nil && !rate.IsNegative() {
		rules.TaxRate = rate
	} else if cfg.TaxRate != "" {
		logger.Warnw("pricing_tax_rate_invalid", "value", cfg.TaxRate)
	}
	return rules
}
