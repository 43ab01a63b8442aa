package model

import "fmt"

// ==================== LinkTarget 跳转目标 ====================

// LinkTarget 横幅跳转目标的带标签变体
// Kind 为 product/category/shop 时 RefID 有效；为 external 时 URL 有效
// 取代松散的 (link_type, link_id) 字符串对，避免调用方拼错组合
type LinkTarget struct {
	Kind  string
	RefID string
	URL   string
}

// ParseLinkTarget 从存储字段还原目标；未知类型按 external 兜底
func ParseLinkTarget(kind, refID, url string) LinkTarget {
	switch kind {
	case LinkTypeProduct, LinkTypeCategory, LinkTypeShop:
		return LinkTarget{Kind: kind, RefID: refID}
	default:
		return LinkTarget{Kind: LinkTypeExternal, URL: url}
	}
}

// Validate 校验标签与载荷的组合
func (t LinkTarget) Validate() error {
	switch t.Kind {
	case LinkTypeProduct, LinkTypeCategory, LinkTypeShop:
		if t.RefID == "" {
			return fmt.Errorf("链接类型 %s 缺少目标 ID", t.Kind)
		}
	case LinkTypeExternal:
		if t.URL == "" {
			return fmt.Errorf("外部链接缺少 URL")
		}
	default:
		return fmt.Errorf("未知的链接类型: %s", t.Kind)
	}
	return nil
}

// IsInternal 是否站内目标
func (t LinkTarget) IsInternal() bool {
	return t.Kind != LinkTypeExternal
}

// Href 渲染跳转地址
func (t LinkTarget) Href() string {
	switch t.Kind {
	case LinkTypeProduct:
		return "/products/" + t.RefID
	case LinkTypeCategory:
		return "/categories/" + t.RefID
	case LinkTypeShop:
		return "/shops/" + t.RefID
	default:
		return t.URL
	}
}
