package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mall_admin_v1_202608/internal/api/dto"
	"mall_admin_v1_202608/internal/middleware"
	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/internal/service"
	"mall_admin_v1_202608/pkg/authclient"
)

// AuthAPI 认证服务接口（生产实现为 authclient.Client）
type AuthAPI interface {
	SignInWithPassword(ctx context.Context, email, password string) (*authclient.Session, *authclient.Identity, error)
	SignUp(ctx context.Context, email, password string) (*authclient.Session, *authclient.Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthController 商家登录/注册/登出
// 凭证校验与存储全部在托管认证服务侧，这里只转发并维护 Cookie 和认证状态
type AuthController struct {
	auth      AuthAPI
	profiles  *service.ProfileService
	authState *service.AuthState
}

// NewAuthController 创建认证控制器
func NewAuthController(auth AuthAPI, profiles *service.ProfileService, authState *service.AuthState) *AuthController {
	return &AuthController{auth: auth, profiles: profiles, authState: authState}
}

// VendorLogin 商家登录
// POST /vendor/login
func (c *AuthController) VendorLogin(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, identity, err := c.auth.SignInWithPassword(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authclient.ErrUnauthorized) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "邮箱或密码不正确"})
			return
		}
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "认证服务暂不可用，请稍后重试"})
		return
	}

	middleware.WriteSessionCookies(ctx, session)

	// 登录即切换认证状态：身份与档案一次性写入
	profile, _, err := c.profiles.Resolve(ctx.Request.Context(), identity.ID)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "档案查询失败，请稍后重试"})
		return
	}
	c.authState.SetSignedIn(identity, profile)

	resp := dto.SessionResponse{UserID: identity.ID, Email: identity.Email}
	if profile != nil {
		resp.Role = profile.Role
		resp.FullName = profile.FullName
	}
	ctx.JSON(http.StatusOK, gin.H{"data": resp})
}

// VendorRegister 商家注册
// POST /vendor/register
// 两步：认证服务建身份，再落 vendor 档案；任一步失败都原样报给调用方
func (c *AuthController) VendorRegister(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, identity, err := c.auth.SignUp(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "注册失败: " + err.Error()})
		return
	}

	profile, err := c.profiles.CreateVendorProfile(ctx.Request.Context(), identity.ID, req.FullName, req.Phone)
	if err != nil {
		// 身份已建、档案落库失败：如实报错，留给运营补档案，不静默吞掉
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "档案创建失败: " + err.Error()})
		return
	}

	if session != nil && session.AccessToken != "" {
		middleware.WriteSessionCookies(ctx, session)
		c.authState.SetSignedIn(identity, profile)
	}

	ctx.JSON(http.StatusOK, gin.H{"data": dto.SessionResponse{
		UserID:   identity.ID,
		Email:    identity.Email,
		Role:     model.RoleVendor,
		FullName: profile.FullName,
	}})
}

// VendorLogout 商家登出
// POST /vendor/logout
func (c *AuthController) VendorLogout(ctx *gin.Context) {
	token := middleware.CurrentAccessToken(ctx)
	if token != "" {
		// 注销失败不阻断登出，本地会话一定要清
		_ = c.auth.SignOut(ctx.Request.Context(), token)
	}

	middleware.ClearSessionCookies(ctx)
	c.authState.SetSignedOut()

	ctx.JSON(http.StatusOK, gin.H{"message": "已退出登录"})
}
