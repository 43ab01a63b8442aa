package repository

import (
	"context"
	"time"

	"mall_admin_v1_202608/internal/model"

	"gorm.io/gorm"
)

// ==================== BannerRepository 横幅仓库 ====================

// BannerRepository 横幅仓库接口
type BannerRepository interface {
	// Create 创建横幅并分配 position = max(position)+1（同一事务内完成，空表时为 1）
	Create(ctx context.Context, banner *model.Banner) error
	GetByID(ctx context.Context, id string) (*model.Banner, error)
	// List 按 position 升序返回全部横幅，position 相同按创建顺序兜底
	List(ctx context.Context) ([]model.Banner, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Banner, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	UpdateActive(ctx context.Context, id string, active bool) error
	UpdatePosition(ctx context.Context, id string, position int) error
	Delete(ctx context.Context, id string) error
	MaxPosition(ctx context.Context) (int, error)
	// DeactivateExpired 批量停用已过投放窗口的横幅，返回影响行数
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// ==================== 实现 ====================

type bannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository 创建横幅仓库
func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepository{db: db}
}

func (r *bannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	// 读最大值和插入放进同一事务，避免并发创建分到重复 position
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&model.Banner{}).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}
		banner.Position = maxPos + 1
		return tx.Create(banner).Error
	})
}

func (r *bannerRepository) GetByID(ctx context.Context, id string) (*model.Banner, error) {
	var banner model.Banner
	err := r.db.WithContext(ctx).First(&banner, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *bannerRepository) List(ctx context.Context) ([]model.Banner, error) {
	var banners []model.Banner
	err := r.db.WithContext(ctx).
		Order("position ASC, created_at ASC").
		Find(&banners).Error
	return banners, err
}

func (r *bannerRepository) ListActive(ctx context.Context, now time.Time) ([]model.Banner, error) {
	var banners []model.Banner
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("position ASC, created_at ASC").
		Find(&banners).Error
	return banners, err
}

func (r *bannerRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := r.db.WithContext(ctx).Model(&model.Banner{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bannerRepository) UpdateActive(ctx context.Context, id string, active bool) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"is_active": active})
}

func (r *bannerRepository) UpdatePosition(ctx context.Context, id string, position int) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"position": position})
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Banner{}, "id = ?", id).Error
}

func (r *bannerRepository) MaxPosition(ctx context.Context) (int, error) {
	var maxPos int
	err := r.db.WithContext(ctx).Model(&model.Banner{}).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos).Error
	return maxPos, err
}

func (r *bannerRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Banner{}).
		Where("is_active = ?", true).
		Where("ends_at IS NOT NULL AND ends_at < ?", now).
		Updates(map[string]interface{}{"is_active": false, "updated_at": now})
	return result.RowsAffected, result.Error
}
