package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mall_admin_v1_202608/pkg/authclient"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ==================== 路径约定 ====================

const (
	AdminPrefix  = "/admin"
	VendorPrefix = "/vendor"

	AdminLoginPath     = "/admin/login"
	VendorLoginPath    = "/vendor/login"
	VendorRegisterPath = "/vendor/register"
)

// Context Keys
const (
	ContextKeyIdentity    = "identity"
	ContextKeyAccessToken = "access_token"
)

// ==================== 会话解析依赖 ====================

// SessionResolver 会话解析接口（生产实现为 authclient.Client）
type SessionResolver interface {
	ResolveSession(ctx context.Context, accessToken, refreshToken string) (*authclient.Identity, *authclient.Session, error)
}

// ==================== SessionGuard 会话守卫 ====================

// SessionGuard 拦截每个请求：解析会话、回写轮换后的 Cookie、按路径前缀决定放行或重定向
//
// 分支逻辑：
//  1. /admin/** 未认证 → 303 跳 /admin/login（登录页本身放行，避免自跳死循环）
//     已认证即放行，暂不校验 admin 角色
//  2. /vendor/login、/vendor/register 无条件放行
//     其余 /vendor/** 未认证 → 303 跳 /vendor/login
//  3. 其它路径一律放行
//
// 认证服务故障一律降级为"未认证"，绝不放行
// Cookie 轮换发生在任何分支之前，放行路径上也必须把新令牌写回响应
func SessionGuard(resolver SessionResolver) gin.HandlerFunc {
	log := logrus.WithField("mw", "session_guard")

	return func(c *gin.Context) {
		accessToken, _ := c.Cookie(authclient.CookieAccessToken)
		refreshToken, _ := c.Cookie(authclient.CookieRefreshToken)

		identity, rotated, err := resolver.ResolveSession(c.Request.Context(), accessToken, refreshToken)
		if err != nil {
			// 失败即未认证；无凭证和令牌失效是常态，只有服务故障才值得记一笔
			identity = nil
			if !errors.Is(err, authclient.ErrNoSession) && !errors.Is(err, authclient.ErrUnauthorized) {
				log.WithError(err).WithField("path", c.Request.URL.Path).
					Warn("会话解析失败，按未认证处理")
			}
		}

		// 令牌轮换：不论后面走哪个分支，新 Cookie 都要先写回响应，
		// 同时改写转发中的请求头，让本次请求的下游读到的也是新令牌
		if rotated != nil {
			WriteSessionCookies(c, rotated)
			propagateToRequest(c, rotated)
			accessToken = rotated.AccessToken
		}

		if identity != nil {
			c.Set(ContextKeyIdentity, identity)
			c.Set(ContextKeyAccessToken, accessToken)
		}

		path := c.Request.URL.Path
		switch {
		case strings.HasPrefix(path, AdminPrefix):
			if path == AdminLoginPath {
				break
			}
			// TODO: 接入 admin 角色校验后改为 identity + 角色双重判断
			if identity == nil {
				c.Redirect(http.StatusSeeOther, AdminLoginPath)
				c.Abort()
				return
			}
		case strings.HasPrefix(path, VendorPrefix):
			if path == VendorLoginPath || path == VendorRegisterPath {
				break
			}
			if identity == nil {
				c.Redirect(http.StatusSeeOther, VendorLoginPath)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// ==================== Cookie 读写 ====================

// WriteSessionCookies 把令牌对写回响应
func WriteSessionCookies(c *gin.Context, session *authclient.Session) {
	maxAge := session.ExpiresIn
	if maxAge <= 0 {
		maxAge = 3600
	}
	// refresh token 的生命周期由认证服务控制，这里给一个宽松的上限
	c.SetCookie(authclient.CookieAccessToken, session.AccessToken, maxAge, "/", "", false, true)
	c.SetCookie(authclient.CookieRefreshToken, session.RefreshToken, 30*24*3600, "/", "", false, true)
}

// ClearSessionCookies 清除会话 Cookie（登出用）
func ClearSessionCookies(c *gin.Context) {
	c.SetCookie(authclient.CookieAccessToken, "", -1, "/", "", false, true)
	c.SetCookie(authclient.CookieRefreshToken, "", -1, "/", "", false, true)
}

// propagateToRequest 把轮换后的令牌同步进请求头
func propagateToRequest(c *gin.Context, session *authclient.Session) {
	cookies := c.Request.Cookies()
	c.Request.Header.Del("Cookie")
	for _, ck := range cookies {
		switch ck.Name {
		case authclient.CookieAccessToken:
			ck.Value = session.AccessToken
		case authclient.CookieRefreshToken:
			ck.Value = session.RefreshToken
		}
		c.Request.AddCookie(ck)
	}
}

// ==================== Context 取值 ====================

// CurrentIdentity 从 Context 取当前身份，未认证返回 nil
func CurrentIdentity(c *gin.Context) *authclient.Identity {
	if v, exists := c.Get(ContextKeyIdentity); exists {
		if identity, ok := v.(*authclient.Identity); ok {
			return identity
		}
	}
	return nil
}

// CurrentAccessToken 从 Context 取当前 access token
func CurrentAccessToken(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyAccessToken); exists {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}
