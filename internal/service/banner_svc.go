package service

import (
	"context"
	"fmt"
	"time"

	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/internal/repository"

	"github.com/sirupsen/logrus"
)

// ==================== 参数与统计结构 ====================

// PositionUpdate 批量排序的单条输入
type PositionUpdate struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// BannerStats 横幅统计（进程内对拉取结果计数，非数据库聚合）
type BannerStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Scheduled int `json:"scheduled"` // 尚未开始投放
	Expired   int `json:"expired"`   // 已过投放窗口
}

// ==================== BannerService 横幅服务 ====================

// BannerService 横幅业务
// 错误策略：读操作吞掉数据访问错误（记日志、返回空集合），写操作把错误抛给调用方
type BannerService struct {
	repo    repository.BannerRepository
	storage StorageService
	log     *logrus.Entry
}

// NewBannerService 创建横幅服务
func NewBannerService(repo repository.BannerRepository, storage StorageService) *BannerService {
	return &BannerService{
		repo:    repo,
		storage: storage,
		log:     logrus.WithField("svc", "banner"),
	}
}

// List 全量横幅，position 升序
// 查询失败记日志并返回空集合，保证页面能渲染（故障表现与空表一致，属有意取舍）
func (s *BannerService) List(ctx context.Context) []model.Banner {
	banners, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithError(err).WithField("op", "list").Error("横幅列表查询失败，按空集合返回")
		return []model.Banner{}
	}
	return banners
}

// ListActive 当前可投放的横幅（开关打开且在有效期内）
func (s *BannerService) ListActive(ctx context.Context) []model.Banner {
	banners, err := s.repo.ListActive(ctx, time.Now())
	if err != nil {
		s.log.WithError(err).WithField("op", "list_active").Error("在投横幅查询失败，按空集合返回")
		return []model.Banner{}
	}
	return banners
}

// Stats 拉全量后在进程内计数
func (s *BannerService) Stats(ctx context.Context) BannerStats {
	banners := s.List(ctx)
	now := time.Now()

	stats := BannerStats{Total: len(banners)}
	for _, b := range banners {
		if b.IsActive {
			stats.Active++
		}
		if b.IsScheduled(now) {
			stats.Scheduled++
		}
		if b.IsExpired(now) {
			stats.Expired++
		}
	}
	return stats
}

// Create 创建横幅；position 由仓库在事务内按 max+1 分配
// imageData 非空时先上传图片再入库
func (s *BannerService) Create(ctx context.Context, banner *model.Banner, imageData []byte, imageName string) error {
	if err := banner.Link().Validate(); err != nil {
		return err
	}

	if len(imageData) > 0 {
		if s.storage == nil {
			return fmt.Errorf("存储服务未配置，无法上传图片")
		}
		url, err := s.storage.Upload(ctx, imageData, imageName, "image/"+extOf(imageName))
		if err != nil {
			return fmt.Errorf("横幅图片上传失败: %w", err)
		}
		banner.ImageURL = url
	}

	return s.repo.Create(ctx, banner)
}

// Update 部分更新，仓库层统一盖 updated_at
func (s *BannerService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	// 改动涉及跳转目标时整体校验
	if hasLinkField(fields) {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		merged := current.Link()
		if v, ok := fields["link_type"].(string); ok {
			merged.Kind = v
		}
		if v, ok := fields["link_id"].(string); ok {
			merged.RefID = v
		}
		if v, ok := fields["link_url"].(string); ok {
			merged.URL = v
		}
		if err := merged.Validate(); err != nil {
			return err
		}
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

// ToggleActive 单字段开关
func (s *BannerService) ToggleActive(ctx context.Context, id string, active bool) error {
	return s.repo.UpdateActive(ctx, id, active)
}

// Delete 按 ID 删除
func (s *BannerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Reposition 批量排序：逐条独立更新，无跨行原子性
// 中途失败时已更新的条目保持生效，错误带上失败下标由调用方展示
func (s *BannerService) Reposition(ctx context.Context, updates []PositionUpdate) error {
	for i, u := range updates {
		if err := s.repo.UpdatePosition(ctx, u.ID, u.Position); err != nil {
			return fmt.Errorf("第 %d 条 (id=%s) 排序更新失败: %w", i, u.ID, err)
		}
	}
	return nil
}

// ==================== 内部工具 ====================

func hasLinkField(fields map[string]interface{}) bool {
	for _, k := range []string{"link_type", "link_id", "link_url"} {
		if _, ok := fields[k]; ok {
			return true
		}
	}
	return false
}

func extOf(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i+1:]
		}
	}
	return "jpeg"
}
