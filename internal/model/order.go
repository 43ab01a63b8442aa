package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
// 注意：状态是开放的字符串枚举，应用层不约束状态迁移（任意状态可覆盖任意状态）
const (
	OrderStatusPending    = "pending"    // 待处理
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusDelivered  = "delivered"  // 已签收
	OrderStatusCancelled  = "cancelled"  // 已取消
)

// KnownOrderStatuses 已知状态集合（仅用于告警，不做硬校验）
var KnownOrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// PaymentStatus 支付状态
const (
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// ==================== Order 订单主表 ====================

// Order 订单
// 订单由上游创建，本后台只读、改状态、展开明细
type Order struct {
	BaseModel

	OrderNumber string `gorm:"size:64;uniqueIndex;not null"`

	// 归属（均可空：游客单没有 UserID，平台自营单没有 ShopID）
	UserID string `gorm:"size:36;index"`
	ShopID string `gorm:"size:36;index"`

	// 状态
	Status string `gorm:"size:32;index;default:pending"`

	// 金额（分为单位存储）
	TotalAmount int64
	Currency    string `gorm:"size:10;default:USD"`

	// 支付
	PaymentMethod string `gorm:"size:64"`
	PaymentStatus string `gorm:"size:32;default:unpaid"`

	// 收货地址（PostgreSQL JSONB）
	ShippingAddress datatypes.JSONMap `gorm:"type:jsonb"`

	// 关联
	Customer *Profile    `gorm:"foreignKey:UserID;references:ID"`
	Shop     *Shop       `gorm:"foreignKey:ShopID;references:ID"`
	Items    []OrderItem `gorm:"foreignKey:OrderID"`
}

func (*Order) TableName() string {
	return "orders"
}

// GetTotal 获取总金额（元）
func (o *Order) GetTotal() float64 {
	return float64(o.TotalAmount) / 100
}

// IsDelivered 是否已签收（营收口径只认已签收单）
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// ==================== OrderItem 订单明细 ====================

// OrderItem 订单行，携带下单时刻的商品快照
type OrderItem struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	OrderID   string    `gorm:"type:uuid;index;not null"`
	ProductID string    `gorm:"size:36;index"`
	Quantity  int       `gorm:"not null;default:1"`
	UnitPrice int64     `gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`

	// 商品快照
	Product *Product `gorm:"foreignKey:ProductID;references:ID"`
}

func (*OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate 建行前补全 UUID
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Subtotal 行小计（分）
func (i *OrderItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}
