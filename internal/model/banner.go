package model

import "time"

// ==================== 链接类型常量 ====================

// LinkType 横幅跳转目标类型
const (
	LinkTypeProduct  = "product"  // 商品详情页
	LinkTypeCategory = "category" // 分类列表页
	LinkTypeShop     = "shop"     // 店铺主页
	LinkTypeExternal = "external" // 站外链接
)

// ==================== Banner 横幅主表 ====================

// Banner 运营横幅
// Position 决定展示顺序，不强制唯一；相同 Position 按创建顺序兜底
type Banner struct {
	BaseModel

	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"size:1024"`

	// 跳转目标（link_type 判别 link_id / link_url 哪个有效）
	LinkType string `gorm:"size:32;default:external"`
	LinkID   string `gorm:"size:36"`
	LinkURL  string `gorm:"size:1024"`

	// 排序与开关
	Position int  `gorm:"index;not null;default:0"`
	IsActive bool `gorm:"default:true"`

	// 投放有效期（可选）
	StartsAt *time.Time
	EndsAt   *time.Time
}

func (*Banner) TableName() string {
	return "banners"
}

// Link 解析为带标签的跳转目标
func (b *Banner) Link() LinkTarget {
	return ParseLinkTarget(b.LinkType, b.LinkID, b.LinkURL)
}

// IsScheduled 是否尚未开始投放
func (b *Banner) IsScheduled(now time.Time) bool {
	return b.StartsAt != nil && b.StartsAt.After(now)
}

// IsExpired 是否已过投放窗口
func (b *Banner) IsExpired(now time.Time) bool {
	return b.EndsAt != nil && b.EndsAt.Before(now)
}
