package model

// Shop 店铺
type Shop struct {
	BaseModel

	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	LogoURL     string `gorm:"size:1024"`
	OwnerID     string `gorm:"size:36;index"` // 店主档案 ID
	IsActive    bool   `gorm:"default:true"`
}

func (*Shop) TableName() string {
	return "shops"
}
