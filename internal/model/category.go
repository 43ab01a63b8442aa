package model

// Category 商品分类（横幅跳转目标之一）
type Category struct {
	BaseModel

	Name     string `gorm:"size:255;not null"`
	Slug     string `gorm:"size:255;uniqueIndex"`
	ParentID string `gorm:"size:36;index"`
	IsActive bool   `gorm:"default:true"`
}

func (*Category) TableName() string {
	return "categories"
}
