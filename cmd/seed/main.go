package main

import (
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 示例商品
	products := []models.Product{
		{
			SKU:           "SKU-KB-0001",
			Name:          "机械键盘 87 键",
			Description:   "热插拔轴体，PBT 键帽",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(399.00)),
			StockQuantity: 120,
			RestockLevel:  20,
			Tags:          models.StringArray{"keyboard", "electronics"},
			IsActive:      true,
			SortOrder:     10,
		},
		{
			SKU:           "SKU-MS-0002",
			Name:          "无线鼠标",
			Description:   "2.4G 双模，静音微动",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(129.00)),
			StockQuantity: 200,
			RestockLevel:  30,
			Tags:          models.StringArray{"mouse", "electronics"},
			IsActive:      true,
			SortOrder:     20,
		},
		{
			SKU:           "SKU-HD-0003",
			Name:          "头戴式耳机",
			Description:   "主动降噪，40 小时续航",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(599.00)),
			StockQuantity: 60,
			RestockLevel:  10,
			Tags:          models.StringArray{"headphone", "electronics"},
			IsActive:      true,
			SortOrder:     30,
		},
		{
			SKU:           "SKU-CB-0004",
			Name:          "编织数据线 1m",
			Description:   "USB-C to USB-C，100W",
			PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(39.00)),
			StockQuantity: 500,
			RestockLevel:  50,
			Tags:          models.StringArray{"cable", "accessories"},
			IsActive:      true,
			SortOrder:     40,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("sku = ?", product.SKU).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.SKU, err)
			} else {
				stdLog.Printf("Created product: %s", product.SKU)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.SKU)
		}
	}

	// 示例优惠券
	now := time.Now()
	endOfYear := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location())
	coupons := []models.Coupon{
		{
			Code:         "WELCOME10",
			Type:         constants.CouponTypePercent,
			Value:        models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MinCartTotal: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			MaxDiscount:  models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			UsageLimit:   1000,
			StartsAt:     &now,
			EndsAt:       &endOfYear,
			IsActive:     true,
		},
		{
			Code:         "SAVE50",
			Type:         constants.CouponTypeFixed,
			Value:        models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			MinCartTotal: models.NewMoneyFromDecimal(decimal.NewFromInt(300)),
			UsageLimit:   0,
			StartsAt:     &now,
			EndsAt:       &endOfYear,
			IsActive:     true,
		},
	}

	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	stdLog.Printf("Seed finished")
}
