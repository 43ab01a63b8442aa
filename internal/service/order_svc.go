package service

import (
	"context"

	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/internal/repository"

	"github.com/sirupsen/logrus"
)

// ==================== 统计结构 ====================

// OrderStats 订单统计（进程内对拉取结果计数，非数据库聚合）
// TotalRevenue 营收口径：只计已签收（delivered）订单
type OrderStats struct {
	Total        int   `json:"total"`
	TotalRevenue int64 `json:"total_revenue"` // 分
	Pending      int   `json:"pending"`
	Processing   int   `json:"processing"`
	Shipped      int   `json:"shipped"`
	Delivered    int   `json:"delivered"`
	Cancelled    int   `json:"cancelled"`
}

// OrderDetail 订单详情：主档 + 明细（明细永远是非 nil 切片）
type OrderDetail struct {
	Order *model.Order      `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// ==================== OrderService 订单服务 ====================

// OrderService 订单业务
// 订单由上游创建，这里只有读、改状态、展开明细
type OrderService struct {
	repo repository.OrderRepository
	log  *logrus.Entry
}

// NewOrderService 创建订单服务
func NewOrderService(repo repository.OrderRepository) *OrderService {
	return &OrderService{
		repo: repo,
		log:  logrus.WithField("svc", "order"),
	}
}

// List 分页列表；读失败记日志返回空集合
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, int64) {
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.WithError(err).WithField("op", "list").Error("订单列表查询失败，按空集合返回")
		return []model.Order{}, 0
	}
	return orders, total
}

// Stats 拉取过滤范围内全量订单后在进程内计数
func (s *OrderService) Stats(ctx context.Context, filter repository.OrderFilter) OrderStats {
	orders, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		s.log.WithError(err).WithField("op", "stats").Error("订单统计查询失败，按零值返回")
		return OrderStats{}
	}
	return countOrderStats(orders)
}

// countOrderStats 纯计数，方便单测
func countOrderStats(orders []model.Order) OrderStats {
	stats := OrderStats{Total: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case model.OrderStatusPending:
			stats.Pending++
		case model.OrderStatusProcessing:
			stats.Processing++
		case model.OrderStatusShipped:
			stats.Shipped++
		case model.OrderStatusDelivered:
			stats.Delivered++
			stats.TotalRevenue += o.TotalAmount
		case model.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// GetDetail 订单详情
// 先查主档，再串行第二次查询取明细（两次查询之间无并发）
func (s *OrderService) GetDetail(ctx context.Context, id string) (*OrderDetail, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetItemsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.OrderItem{}
	}

	return &OrderDetail{Order: order, Items: items}, nil
}

// UpdateStatus 改状态
// 状态是开放枚举：未知字符串照写，只打告警不拦截
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status string) error {
	if !isKnownStatus(status) {
		s.log.WithFields(logrus.Fields{"op": "update_status", "status": status}).
			Warn("写入未知订单状态")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// Update 部分更新
func (s *OrderService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.repo.UpdateFields(ctx, id, fields)
}

func isKnownStatus(status string) bool {
	for _, known := range model.KnownOrderStatuses {
		if status == known {
			return true
		}
	}
	return false
}
