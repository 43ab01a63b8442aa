package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mall_admin_v1_202608/internal/api/dto"
	"mall_admin_v1_202608/internal/middleware"
	"mall_admin_v1_202608/internal/repository"
	"mall_admin_v1_202608/internal/service"
)

// VendorController 商家后台
type VendorController struct {
	orders *service.OrderService
	shops  repository.ShopRepository
}

// NewVendorController 创建商家控制器
func NewVendorController(orders *service.OrderService, shops repository.ShopRepository) *VendorController {
	return &VendorController{orders: orders, shops: shops}
}

// Dashboard 商家工作台：本店订单 + 统计
// GET /vendor/dashboard
func (c *VendorController) Dashboard(ctx *gin.Context) {
	identity := middleware.CurrentIdentity(ctx)

	shop, err := c.shops.GetByOwnerID(ctx.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"shop":   nil,
				"orders": []dto.OrderListItem{},
				"stats":  dto.OrderStatsResponse{},
			}})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filter := repository.OrderFilter{ShopID: shop.ID, PageSize: 20}
	orders, total := c.orders.List(ctx.Request.Context(), filter)
	stats := c.orders.Stats(ctx.Request.Context(), repository.OrderFilter{ShopID: shop.ID})

	list := make([]dto.OrderListItem, len(orders))
	for i, o := range orders {
		list[i] = toOrderListItem(&o)
	}

	ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
		"shop": gin.H{"id": shop.ID, "name": shop.Name},
		"orders": dto.ListOrdersResponse{Total: total, List: list},
		"stats": dto.OrderStatsResponse{
			Total:        stats.Total,
			TotalRevenue: float64(stats.TotalRevenue) / 100,
			Pending:      stats.Pending,
			Processing:   stats.Processing,
			Shipped:      stats.Shipped,
			Delivered:    stats.Delivered,
			Cancelled:    stats.Cancelled,
		},
	}})
}
