package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mall_admin_v1_202608/internal/controller"
	"mall_admin_v1_202608/internal/middleware"
	"mall_admin_v1_202608/internal/service"
)

// Controllers 控制器集合
type Controllers struct {
	Banner *controller.BannerController
	Order  *controller.OrderController
	Auth   *controller.AuthController
	Vendor *controller.VendorController
}

// SetupRouter 注册所有路由
// 会话守卫挂在全局：每个请求都先解析会话、回写轮换 Cookie，再按前缀分流
func SetupRouter(resolver middleware.SessionResolver, profiles *service.ProfileService, ctls *Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SessionGuard(resolver))

	// 1. 管理后台（守卫只验身份，角色校验见守卫内 TODO）
	admin := r.Group(middleware.AdminPrefix)
	{
		// 登录页由前端渲染，这里只留个探活
		admin.GET("/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "请通过页面登录"})
		})

		banners := admin.Group("/banners")
		{
			// GET /admin/banners
			banners.GET("", ctls.Banner.List)
			banners.GET("/stats", ctls.Banner.Stats)
			banners.POST("", ctls.Banner.Create)
			banners.POST("/reposition", ctls.Banner.Reposition)
			banners.PATCH("/:id", ctls.Banner.Update)
			banners.PATCH("/:id/toggle", ctls.Banner.Toggle)
			banners.DELETE("/:id", ctls.Banner.Delete)
		}

		orders := admin.Group("/orders")
		{
			// GET /admin/orders
			orders.GET("", ctls.Order.List)
			orders.GET("/stats", ctls.Order.Stats)
			orders.GET("/:id", ctls.Order.Detail)
			orders.PATCH("/:id", ctls.Order.Update)
			orders.PATCH("/:id/status", ctls.Order.UpdateStatus)
		}
	}

	// 2. 商家区（login/register 由守卫无条件放行）
	vendor := r.Group(middleware.VendorPrefix)
	{
		vendor.POST("/login", ctls.Auth.VendorLogin)
		vendor.POST("/register", ctls.Auth.VendorRegister)
		vendor.POST("/logout", ctls.Auth.VendorLogout)

		// 工作台要求 vendor 角色
		authed := vendor.Group("")
		authed.Use(middleware.ResolveProfile(profiles), middleware.RequireVendor())
		{
			authed.GET("/dashboard", ctls.Vendor.Dashboard)
		}
	}

	// 3. 门户侧只读接口（不需要登录）
	r.GET("/banners", ctls.Banner.ListActive)

	return r
}
