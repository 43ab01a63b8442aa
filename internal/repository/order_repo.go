package repository

import (
	"context"
	"time"

	"mall_admin_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== 过滤条件 ====================

// OrderFilter 订单过滤条件
type OrderFilter struct {
	ShopID    string
	UserID    string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Keyword   string
	Page      int
	PageSize  int
}

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
// 订单创建发生在上游，本后台不提供 Create
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// GetItemsByOrderID 订单明细（第二次独立查询，带商品快照）
	GetItemsByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)
	// ListAll 拉取过滤范围内全部订单（统计口径在进程内计数）
	ListAll(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	UpdateStatus(ctx context.Context, id string, status string) error
}

// ==================== 实现 ====================

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Shop").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetItemsByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *orderRepository) applyFilter(db *gorm.DB, filter OrderFilter) *gorm.DB {
	if filter.ShopID != "" {
		db = db.Where("shop_id = ?", filter.ShopID)
	}
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.StartDate != nil {
		db = db.Where("created_at >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		db = db.Where("created_at <= ?", filter.EndDate)
	}
	if filter.Keyword != "" {
		db = db.Where("order_number LIKE ?", "%"+filter.Keyword+"%")
	}
	return db
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := r.applyFilter(r.db.WithContext(ctx).Model(&model.Order{}), filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	err := db.
		Preload("Customer").
		Preload("Shop").
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) ListAll(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	var orders []model.Order
	db := r.applyFilter(r.db.WithContext(ctx).Model(&model.Order{}), filter)
	err := db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"status": status})
}
