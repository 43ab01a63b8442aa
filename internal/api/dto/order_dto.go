package dto

import "time"

// ==================== 订单列表查询 ====================

// ListOrdersRequest 订单列表请求
type ListOrdersRequest struct {
	Status    string `form:"status"`     // pending, processing, shipped, delivered, cancelled
	ShopID    string `form:"shop_id"`
	StartDate string `form:"start_date"` // 2026-01-01
	EndDate   string `form:"end_date"`
	Keyword   string `form:"keyword"` // 订单号模糊匹配
	Page      int    `form:"page,default=1"`
	PageSize  int    `form:"page_size,default=20"`
}

// ListOrdersResponse 订单列表响应
type ListOrdersResponse struct {
	Total int64           `json:"total"`
	List  []OrderListItem `json:"list"`
}

// OrderListItem 订单列表项
type OrderListItem struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name,omitempty"`
	ShopName      string    `json:"shop_name,omitempty"`
	Status        string    `json:"status"`
	TotalAmount   float64   `json:"total_amount"` // 元
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ==================== 订单详情 ====================

// OrderDetailResponse 订单详情响应
type OrderDetailResponse struct {
	Order OrderListItem `json:"order"`
	Items []OrderItemVO `json:"items"`
}

// OrderItemVO 订单行视图对象
type OrderItemVO struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id,omitempty"`
	ProductName  string  `json:"product_name,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"` // 元
	Subtotal     float64 `json:"subtotal"`   // 元
}

// ==================== 订单变更 ====================

// UpdateOrderStatusRequest 改状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderRequest 部分更新请求，nil 字段不动
type UpdateOrderRequest struct {
	PaymentMethod *string `json:"payment_method"`
	PaymentStatus *string `json:"payment_status"`
	Currency      *string `json:"currency"`
}

// Fields 转成仓库层的部分更新字段表
func (r *UpdateOrderRequest) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.PaymentMethod != nil {
		fields["payment_method"] = *r.PaymentMethod
	}
	if r.PaymentStatus != nil {
		fields["payment_status"] = *r.PaymentStatus
	}
	if r.Currency != nil {
		fields["currency"] = *r.Currency
	}
	return fields
}

// OrderStatsResponse 订单统计响应
type OrderStatsResponse struct {
	Total        int     `json:"total"`
	TotalRevenue float64 `json:"total_revenue"` // 元，只计已签收订单
	Pending      int     `json:"pending"`
	Processing   int     `json:"processing"`
	Shipped      int     `json:"shipped"`
	Delivered    int     `json:"delivered"`
	Cancelled    int     `json:"cancelled"`
}
