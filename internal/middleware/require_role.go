package middleware

import (
	"net/http"

	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/internal/service"

	"github.com/gin-gonic/gin"
)

const ContextKeyProfile = "profile"

// ResolveProfile 把当前身份的档案装进 Context
// 档案不存在不是错误，Context 里不放即可；查询故障按 503 处理，不能伪装成"没有档案"
func ResolveProfile(profiles *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := CurrentIdentity(c)
		if identity == nil {
			c.Next()
			return
		}

		profile, found, err := profiles.Resolve(c.Request.Context(), identity.ID)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"code":    503,
				"message": "档案查询失败，请稍后重试",
			})
			c.Abort()
			return
		}
		if found {
			c.Set(ContextKeyProfile, profile)
		}

		c.Next()
	}
}

// RequireRole 角色校验，依赖 ResolveProfile 先行
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := CurrentProfile(c)
		if profile == nil {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "当前账号没有档案，无法校验角色",
			})
			c.Abort()
			return
		}

		for _, r := range roles {
			if profile.Role == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "没有访问权限",
		})
		c.Abort()
	}
}

// RequireVendor 商家专属路由
func RequireVendor() gin.HandlerFunc {
	return RequireRole(model.RoleVendor)
}

// CurrentProfile 从 Context 取当前档案，没有返回 nil
func CurrentProfile(c *gin.Context) *model.Profile {
	if v, exists := c.Get(ContextKeyProfile); exists {
		if profile, ok := v.(*model.Profile); ok {
			return profile
		}
	}
	return nil
}
