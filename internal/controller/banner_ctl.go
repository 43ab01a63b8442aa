package controller

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"mall_admin_v1_202608/internal/api/dto"
	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/internal/service"
)

// BannerController 横幅控制器
type BannerController struct {
	svc *service.BannerService
}

// NewBannerController 创建横幅控制器
func NewBannerController(svc *service.BannerService) *BannerController {
	return &BannerController{svc: svc}
}

// ==================== 列表与统计 ====================

// List 横幅列表
// GET /admin/banners
func (c *BannerController) List(ctx *gin.Context) {
	banners := c.svc.List(ctx.Request.Context())

	list := make([]dto.BannerVO, len(banners))
	for i, b := range banners {
		list[i] = toBannerVO(&b)
	}

	ctx.JSON(http.StatusOK, gin.H{"data": list})
}

// ListActive 门户侧在投横幅（开关打开且在有效期内）
// GET /banners
func (c *BannerController) ListActive(ctx *gin.Context) {
	banners := c.svc.ListActive(ctx.Request.Context())

	list := make([]dto.BannerVO, len(banners))
	for i, b := range banners {
		list[i] = toBannerVO(&b)
	}

	ctx.JSON(http.StatusOK, gin.H{"data": list})
}

// Stats 横幅统计
// GET /admin/banners/stats
func (c *BannerController) Stats(ctx *gin.Context) {
	stats := c.svc.Stats(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"data": stats})
}

// ==================== 增删改 ====================

// Create 创建横幅
// POST /admin/banners
func (c *BannerController) Create(ctx *gin.Context) {
	var req dto.CreateBannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	banner := &model.Banner{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		LinkType:    req.LinkType,
		LinkID:      req.LinkID,
		LinkURL:     req.LinkURL,
		IsActive:    true,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	var imageData []byte
	if req.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "图片 base64 解析失败"})
			return
		}
		imageData = data
	}

	if err := c.svc.Create(ctx.Request.Context(), banner, imageData, req.ImageName); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": toBannerVO(banner)})
}

// Update 部分更新
// PATCH /admin/banners/:id
func (c *BannerController) Update(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.UpdateBannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := req.Fields()
	if len(fields) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "没有可更新的字段"})
		return
	}

	if err := c.svc.Update(ctx.Request.Context(), id, fields); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// Toggle 上下架开关
// PATCH /admin/banners/:id/toggle
func (c *BannerController) Toggle(ctx *gin.Context) {
	id := ctx.Param("id")

	var req dto.ToggleBannerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.svc.ToggleActive(ctx.Request.Context(), id, req.IsActive); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

// Delete 删除横幅
// DELETE /admin/banners/:id
func (c *BannerController) Delete(ctx *gin.Context) {
	if err := c.svc.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// Reposition 批量排序
// POST /admin/banners/reposition
func (c *BannerController) Reposition(ctx *gin.Context) {
	var req dto.RepositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make([]service.PositionUpdate, len(req.Items))
	for i, item := range req.Items {
		updates[i] = service.PositionUpdate{ID: item.ID, Position: item.Position}
	}

	// 逐条独立更新：失败时已生效的条目不回滚，错误信息带失败下标
	if err := c.svc.Reposition(ctx.Request.Context(), updates); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "排序已更新"})
}

// ==================== VO 转换 ====================

func toBannerVO(b *model.Banner) dto.BannerVO {
	return dto.BannerVO{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		LinkType:    b.LinkType,
		Href:        b.Link().Href(),
		Position:    b.Position,
		IsActive:    b.IsActive,
		StartsAt:    b.StartsAt,
		EndsAt:      b.EndsAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
