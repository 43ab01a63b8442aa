package model

// ==================== 角色常量 ====================

// Role 档案角色（封闭枚举）
const (
	RoleAdmin    = "admin"    // 平台管理员
	RoleVendor   = "vendor"   // 入驻商家
	RoleCustomer = "customer" // 普通买家
)

// ==================== Profile 档案 ====================

// Profile 应用层用户档案，主键即认证身份的 UUID
// 本后台只读档案，写入发生在注册链路
type Profile struct {
	BaseModel

	FullName   string `gorm:"size:255"`
	Phone      string `gorm:"size:32"`
	Role       string `gorm:"size:20;default:customer"`
	IsVerified bool   `gorm:"default:false"`
}

func (*Profile) TableName() string {
	return "profiles"
}

// IsAdmin 是否平台管理员
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsVendor 是否入驻商家
func (p *Profile) IsVendor() bool {
	return p.Role == RoleVendor
}
