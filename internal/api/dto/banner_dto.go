package dto

import "time"

// ==================== 横幅请求 ====================

// CreateBannerRequest 创建横幅请求
type CreateBannerRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	// 二选一：直接给图片 URL，或给 base64 让后端上传
	ImageURL    string `json:"image_url"`
	ImageBase64 string `json:"image_base64"`
	ImageName   string `json:"image_name"`

	LinkType string `json:"link_type" binding:"required,oneof=product category shop external"`
	LinkID   string `json:"link_id"`
	LinkURL  string `json:"link_url"`

	IsActive *bool      `json:"is_active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// UpdateBannerRequest 部分更新请求，nil 字段不动
type UpdateBannerRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"image_url"`
	LinkType    *string    `json:"link_type"`
	LinkID      *string    `json:"link_id"`
	LinkURL     *string    `json:"link_url"`
	IsActive    *bool      `json:"is_active"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

// Fields 转成仓库层的部分更新字段表
func (r *UpdateBannerRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.ImageURL != nil {
		fields["image_url"] = *r.ImageURL
	}
	if r.LinkType != nil {
		fields["link_type"] = *r.LinkType
	}
	if r.LinkID != nil {
		fields["link_id"] = *r.LinkID
	}
	if r.LinkURL != nil {
		fields["link_url"] = *r.LinkURL
	}
	if r.IsActive != nil {
		fields["is_active"] = *r.IsActive
	}
	if r.StartsAt != nil {
		fields["starts_at"] = *r.StartsAt
	}
	if r.EndsAt != nil {
		fields["ends_at"] = *r.EndsAt
	}
	return fields
}

// ToggleBannerRequest 开关请求
type ToggleBannerRequest struct {
	IsActive bool `json:"is_active"`
}

// RepositionItem 批量排序单条
type RepositionItem struct {
	ID       string `json:"id" binding:"required"`
	Position int    `json:"position" binding:"required"`
}

// RepositionRequest 批量排序请求
type RepositionRequest struct {
	Items []RepositionItem `json:"items" binding:"required,min=1,dive"`
}

// ==================== 横幅响应 ====================

// BannerVO 横幅视图对象
type BannerVO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	LinkType    string     `json:"link_type"`
	Href        string     `json:"href"`
	Position    int        `json:"position"`
	IsActive    bool       `json:"is_active"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
