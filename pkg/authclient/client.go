package authclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== Cookie 约定 ====================

// 会话 Cookie 名称，与前端约定保持一致
const (
	CookieAccessToken  = "mall-access-token"
	CookieRefreshToken = "mall-refresh-token"
)

// ==================== 错误定义 ====================

var (
	// ErrUnauthorized 令牌无效或已过期（可尝试用 refresh token 续期）
	ErrUnauthorized = errors.New("authclient: 令牌无效或已过期")
	// ErrNoSession 请求里没有任何会话凭证
	ErrNoSession = errors.New("authclient: 无会话凭证")
)

// ==================== 数据结构 ====================

// Identity 认证身份（托管认证服务解析出的当前用户）
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Session 令牌对
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// tokenResponse /token 响应，续期和密码登录共用
type tokenResponse struct {
	Session
	User *Identity `json:"user"`
}

type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
	Msg         string `json:"msg"`
}

func (e *errorResponse) message() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.Error
}

// ==================== 配置与客户端 ====================

// Config 认证服务配置
type Config struct {
	BaseURL string        // 托管认证服务地址
	APIKey  string        // 项目 API Key（每个请求都要带）
	Timeout time.Duration // 单次请求超时
}

// Client 托管认证服务客户端
// 封装 GoTrue 风格的 HTTP 接口：校验、续期、密码登录、注册、登出
type Client struct {
	http *resty.Client
}

// New 创建认证客户端
func New(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("apikey", cfg.APIKey)

	return &Client{http: httpClient}
}

// ==================== 接口实现 ====================

// GetUser 校验 access token 并返回当前身份
func (c *Client) GetUser(ctx context.Context, accessToken string) (*Identity, error) {
	var identity Identity
	var errResp errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&identity).
		SetError(&errResp).
		Get("/auth/v1/user")
	if err != nil {
		return nil, err
	}

	switch {
	case resp.IsSuccess():
		return &identity, nil
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		return nil, fmt.Errorf("authclient: 获取用户失败 (%d): %s", resp.StatusCode(), errResp.message())
	}
}

// RefreshSession 用 refresh token 换新令牌对
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, *Identity, error) {
	return c.tokenGrant(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

// SignInWithPassword 密码登录
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, *Identity, error) {
	return c.tokenGrant(ctx, "password", map[string]string{"email": email, "password": password})
}

func (c *Client) tokenGrant(ctx context.Context, grantType string, body map[string]string) (*Session, *Identity, error) {
	var result tokenResponse
	var errResp errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", grantType).
		SetBody(body).
		SetResult(&result).
		SetError(&errResp).
		Post("/auth/v1/token")
	if err != nil {
		return nil, nil, err
	}

	switch {
	case resp.IsSuccess():
		return &result.Session, result.User, nil
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusBadRequest:
		return nil, nil, ErrUnauthorized
	default:
		return nil, nil, fmt.Errorf("authclient: %s 授权失败 (%d): %s", grantType, resp.StatusCode(), errResp.message())
	}
}

// SignUp 注册新身份
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, *Identity, error) {
	var result tokenResponse
	var errResp errorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		SetError(&errResp).
		Post("/auth/v1/signup")
	if err != nil {
		return nil, nil, err
	}

	if !resp.IsSuccess() {
		return nil, nil, fmt.Errorf("authclient: 注册失败 (%d): %s", resp.StatusCode(), errResp.message())
	}
	return &result.Session, result.User, nil
}

// SignOut 注销当前会话
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		Post("/auth/v1/logout")
	if err != nil {
		return err
	}
	// 令牌本来就失效时按注销成功处理
	if !resp.IsSuccess() && resp.StatusCode() != http.StatusUnauthorized {
		return fmt.Errorf("authclient: 注销失败 (%d)", resp.StatusCode())
	}
	return nil
}

// ==================== 会话解析 ====================

// ResolveSession 解析一次请求携带的会话凭证
// 返回身份与（如发生续期）新的令牌对；rotated 非空时调用方必须把新 Cookie 写回响应
// 任何网络/服务错误原样返回，由调用方降级为"未认证"
func (c *Client) ResolveSession(ctx context.Context, accessToken, refreshToken string) (identity *Identity, rotated *Session, err error) {
	if accessToken == "" && refreshToken == "" {
		return nil, nil, ErrNoSession
	}

	// access token 未过期时先走校验，省一次续期
	if accessToken != "" && !tokenExpired(accessToken) {
		identity, err = c.GetUser(ctx, accessToken)
		if err == nil {
			return identity, nil, nil
		}
		if !errors.Is(err, ErrUnauthorized) {
			return nil, nil, err
		}
		// 401 落入续期分支
	}

	if refreshToken == "" {
		return nil, nil, ErrUnauthorized
	}

	session, user, err := c.RefreshSession(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}

	// 续期响应未内联用户时补一次校验
	if user == nil {
		user, err = c.GetUser(ctx, session.AccessToken)
		if err != nil {
			return nil, session, err
		}
	}

	return user, session, nil
}
