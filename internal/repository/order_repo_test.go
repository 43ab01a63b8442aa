package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mall_admin_v1_202608/internal/model"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(&model.Profile{}, &model.Shop{}, &model.Product{}, &model.Order{}, &model.OrderItem{})
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

func seedOrder(t *testing.T, db *gorm.DB, number, status string, amount int64) *model.Order {
	t.Helper()
	order := &model.Order{
		OrderNumber: number,
		Status:      status,
		TotalAmount: amount,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("订单种子数据失败: %v", err)
	}
	return order
}

func TestOrderRepo_List_FilterByStatus(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	seedOrder(t, db, "SO-1001", model.OrderStatusPending, 1000)
	seedOrder(t, db, "SO-1002", model.OrderStatusDelivered, 2000)
	seedOrder(t, db, "SO-1003", model.OrderStatusDelivered, 3000)

	orders, total, err := repo.List(ctx, OrderFilter{Status: model.OrderStatusDelivered})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, 期望 2", total)
	}
	for _, o := range orders {
		if o.Status != model.OrderStatusDelivered {
			t.Errorf("过滤失效，混入状态 %s", o.Status)
		}
	}
}

func TestOrderRepo_List_KeywordOnOrderNumber(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	seedOrder(t, db, "SO-2001", model.OrderStatusPending, 1000)
	seedOrder(t, db, "XX-9999", model.OrderStatusPending, 1000)

	_, total, err := repo.List(ctx, OrderFilter{Keyword: "SO-2"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 {
		t.Errorf("关键字过滤 total = %d, 期望 1", total)
	}
}

func TestOrderRepo_GetItemsByOrderID(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, "SO-3001", model.OrderStatusPending, 5000)

	product := &model.Product{ThumbnailURL: "https://cdn.example.com/p.jpg"}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("商品种子数据失败: %v", err)
	}
	item := &model.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 2, UnitPrice: 2500}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("订单行种子数据失败: %v", err)
	}

	items, err := repo.GetItemsByOrderID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetItemsByOrderID() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("明细数量 = %d, 期望 1", len(items))
	}
	if items[0].Product == nil || items[0].Product.ID != product.ID {
		t.Error("明细应带出商品快照")
	}
	if items[0].Subtotal() != 5000 {
		t.Errorf("行小计 = %d, 期望 5000", items[0].Subtotal())
	}

	// 没有明细时返回空切片而不是 nil 错误
	other := seedOrder(t, db, "SO-3002", model.OrderStatusPending, 0)
	items, err = repo.GetItemsByOrderID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetItemsByOrderID() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("无明细订单应返回空集合, got %d", len(items))
	}
}

func TestOrderRepo_UpdateStatus_AnyOverAny(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, "SO-4001", model.OrderStatusDelivered, 1000)

	// 应用层不约束状态迁移：已签收也可以改回待处理
	if err := repo.UpdateStatus(ctx, order.ID, model.OrderStatusPending); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	got, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != model.OrderStatusPending {
		t.Errorf("status = %s, 期望 pending", got.Status)
	}
}

func TestOrderRepo_UpdateStatus_NotFound(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	err := repo.UpdateStatus(ctx, "00000000-0000-0000-0000-000000000000", model.OrderStatusShipped)
	if err != gorm.ErrRecordNotFound {
		t.Errorf("更新不存在的订单应返回 ErrRecordNotFound, got %v", err)
	}
}
