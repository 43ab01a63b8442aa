package model

import "gorm.io/datatypes"

// Product 商品（订单明细引用的快照来源）
type Product struct {
	BaseModel

	// 多语言名称（PostgreSQL JSONB，键为语言码）
	Name         datatypes.JSONMap `gorm:"type:jsonb"`
	ThumbnailURL string            `gorm:"size:1024"`
	ShopID       string            `gorm:"size:36;index"`
	CategoryID   string            `gorm:"size:36;index"`
	Price        int64
	IsActive     bool `gorm:"default:true"`
}

func (*Product) TableName() string {
	return "products"
}

// LocalizedName 取指定语言的名称，缺失时回退英文
func (p *Product) LocalizedName(lang string) string {
	if v, ok := p.Name[lang].(string); ok && v != "" {
		return v
	}
	if v, ok := p.Name["en"].(string); ok {
		return v
	}
	return ""
}
