package repository

import (
	"errors"
	"time"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetOrCreate(userID uint, sessionID string) (*models.Cart, error)
	GetByOwner(userID uint, sessionID string) (*models.Cart, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItem(cartID, productID uint) (*models.CartItem, error)
	UpsertItem(item *models.CartItem) error
	UpdateItemQuantity(cartID, productID uint, quantity int) (int64, error)
	DeleteItem(cartID, productID uint) (int64, error)
	ClearItems(cartID uint) error
	Delete(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetOrCreate 按归属获取购物车，不存在时创建空车
func (r *GormCartRepository) GetOrCreate(userID uint, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ? AND session_id = ?", userID, sessionID).
		Attrs(models.Cart{UserID: userID, SessionID: sessionID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetByOwner 按归属获取购物车，不存在返回 nil
func (r *GormCartRepository) GetByOwner(userID uint, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ? AND session_id = ?", userID, sessionID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ListItems 获取购物车全部条目
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Where("cart_id = ?", cartID).Order("created_at asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 获取单个购物车条目
func (r *GormCartRepository) GetItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertItem 插入或累加购物车条目。
// 冲突时只累加数量，单价保留首次加入时的快照。
func (r *GormCartRepository) UpsertItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
}

// UpdateItemQuantity 覆盖条目数量，返回受影响行数
func (r *GormCartRepository) UpdateItemQuantity(cartID, productID uint, quantity int) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// DeleteItem 删除条目，返回受影响行数
func (r *GormCartRepository) DeleteItem(cartID, productID uint) (int64, error) {
	result := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearItems 清空购物车条目
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// Delete 删除购物车行（条目应先清空）
func (r *GormCartRepository) Delete(cartID uint) error {
	return r.db.Where("id = ?", cartID).Delete(&models.Cart{}).Error
}
