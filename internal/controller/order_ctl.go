package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mall_admin_v1_202608/internal/api/dto"
	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/internal/repository"
	"mall_admin_v1_202608/internal/service"
)

// OrderController 订单控制器
type OrderController struct {
	svc *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// ==================== 列表与统计 ====================

// List 订单列表
// GET /admin/orders
func (c *OrderController) List(ctx *gin.Context) {
	var req dto.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := toOrderFilter(req)
	orders, total := c.svc.List(ctx.Request.Context(), filter)

	list := make([]dto.OrderListItem, len(orders))
	for i, o := range orders {
		list[i] = toOrderListItem(&o)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": dto.ListOrdersResponse{Total: total, List: list},
	})
}

// Stats 订单统计
// GET /admin/orders/stats
func (c *OrderController) Stats(ctx *gin.Context) {
	var req dto.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats := c.svc.Stats(ctx.Request.Context(), toOrderFilter(req))
	ctx.JSON(http.StatusOK, gin.H{"data": dto.OrderStatsResponse{
		Total:        stats.Total,
		TotalRevenue: float64(stats.TotalRevenue) / 100,
		Pending:      stats.Pending,
		Processing:   stats.Processing,
		Shipped:      stats.Shipped,
		Delivered:    stats.Delivered,
		Cancelled:    stats.Cancelled,
	}})
}

// ==================== 详情与变更 ====================

// Detail 订单详情（含明细）
// GET /admin/orders/:id
func (c *OrderController) Detail(ctx *gin.Context) {
	detail, err := c.svc.GetDetail(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "订单不存在"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]dto.OrderItemVO, len(detail.Items))
	for i, item := range detail.Items {
		items[i] = toOrderItemVO(&item)
	}

	ctx.JSON(http.StatusOK, gin.H{"data": dto.OrderDetailResponse{
		Order: toOrderListItem(detail.Order),
		Items: items,
	}})
}

// Update 部分更新（支付方式、支付状态等非状态字段）
// PATCH /admin/orders/:id
func (c *OrderController) Update(ctx *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := req.Fields()
	if len(fields) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "没有可更新的字段"})
		return
	}

	if err := c.svc.Update(ctx.Request.Context(), ctx.Param("id"), fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "订单不存在"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// UpdateStatus 改状态
// PATCH /admin/orders/:id/status
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.svc.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "订单不存在"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "状态已更新"})
}

// ==================== 转换 ====================

func toOrderFilter(req dto.ListOrdersRequest) repository.OrderFilter {
	filter := repository.OrderFilter{
		ShopID:   req.ShopID,
		Status:   req.Status,
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.StartDate != "" {
		if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			filter.StartDate = &t
		}
	}
	if req.EndDate != "" {
		if t, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			filter.EndDate = &t
		}
	}
	return filter
}

func toOrderListItem(o *model.Order) dto.OrderListItem {
	item := dto.OrderListItem{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		TotalAmount:   o.GetTotal(),
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
	}
	if o.Customer != nil {
		item.CustomerName = o.Customer.FullName
	}
	if o.Shop != nil {
		item.ShopName = o.Shop.Name
	}
	return item
}

func toOrderItemVO(item *model.OrderItem) dto.OrderItemVO {
	vo := dto.OrderItemVO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: float64(item.UnitPrice) / 100,
		Subtotal:  float64(item.Subtotal()) / 100,
	}
	if item.Product != nil {
		vo.ProductName = item.Product.LocalizedName("en")
		vo.ThumbnailURL = item.Product.ThumbnailURL
	}
	return vo
}
