package service

import (
	"sync"

	"mall_admin_v1_202608/internal/model"
	"mall_admin_v1_202608/pkg/authclient"
)

// ==================== 认证状态事件 ====================

// AuthEvent 认证状态变更事件
const (
	AuthEventSignedIn       = "SIGNED_IN"
	AuthEventSignedOut      = "SIGNED_OUT"
	AuthEventTokenRefreshed = "TOKEN_REFRESHED"
)

// AuthSnapshot 一致性快照：身份和档案永远来自同一次变更
type AuthSnapshot struct {
	Identity *authclient.Identity
	Profile  *model.Profile
	IsAdmin  bool
	IsVendor bool
}

// AuthStateListener 状态变更回调，在变更落地后触发
type AuthStateListener func(event string, snapshot AuthSnapshot)

// ==================== AuthState 认证状态存储 ====================

// AuthState 当前活跃身份的唯一事实来源
// (身份, 档案) 作为一个整体原子切换：观察者绝不会看到"身份是新用户、
// 档案还是上一个用户"的中间态；身份清空的同一次变更里档案也一并清空
type AuthState struct {
	mu        sync.RWMutex
	current   AuthSnapshot
	listeners []AuthStateListener
}

// NewAuthState 创建空状态（未登录）
func NewAuthState() *AuthState {
	return &AuthState{}
}

// Snapshot 读取一致性快照
func (s *AuthState) Snapshot() AuthSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe 注册状态变更回调
func (s *AuthState) Subscribe(listener AuthStateListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// SetSignedIn 登录或身份切换：身份与档案同一把锁下一起写入
// profile 可为 nil（档案不存在不阻断登录）
func (s *AuthState) SetSignedIn(identity *authclient.Identity, profile *model.Profile) {
	s.transition(AuthEventSignedIn, AuthSnapshot{
		Identity: identity,
		Profile:  profile,
		IsAdmin:  profile != nil && profile.IsAdmin(),
		IsVendor: profile != nil && profile.IsVendor(),
	})
}

// SetTokenRefreshed 令牌轮换：身份不变，只发事件
func (s *AuthState) SetTokenRefreshed() {
	s.mu.Lock()
	snapshot := s.current
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(AuthEventTokenRefreshed, snapshot)
	}
}

// SetSignedOut 登出：身份与档案在同一次变更里清空
func (s *AuthState) SetSignedOut() {
	s.transition(AuthEventSignedOut, AuthSnapshot{})
}

func (s *AuthState) transition(event string, next AuthSnapshot) {
	s.mu.Lock()
	s.current = next
	listeners := s.listeners
	s.mu.Unlock()

	// 回调在锁外触发，避免监听者回查状态时死锁
	for _, l := range listeners {
		l(event, next)
	}
}
