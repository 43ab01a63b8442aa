package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mintToken 生成测试用 JWT（本地过期检查只读声明，不验签）
func mintToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// newFakeProvider 启动一个伪造的托管认证服务
func newFakeProvider(t *testing.T, validAccess, validRefresh string, identity Identity) (*httptest.Server, *Session) {
	t.Helper()

	rotated := &Session{
		AccessToken:  mintToken(t, time.Now().Add(time.Hour)),
		RefreshToken: "refresh-rotated",
		TokenType:    "bearer",
		ExpiresIn:    3600,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") == "Bearer "+validAccess ||
			r.Header.Get("Authorization") == "Bearer "+rotated.AccessToken {
			json.NewEncoder(w).Encode(identity)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"msg": "invalid token"})
	})
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Query().Get("grant_type") {
		case "refresh_token":
			if body["refresh_token"] != validRefresh {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"msg": "invalid refresh token"})
				return
			}
			json.NewEncoder(w).Encode(tokenResponse{Session: *rotated, User: &identity})
		case "password":
			if body["email"] == "vendor@example.com" && body["password"] == "secret" {
				json.NewEncoder(w).Encode(tokenResponse{Session: *rotated, User: &identity})
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"msg": "invalid credentials"})
		}
	})
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, rotated
}

func TestResolveSession_ValidAccessToken(t *testing.T) {
	identity := Identity{ID: "user-1", Email: "vendor@example.com"}
	access := mintToken(t, time.Now().Add(time.Hour))
	server, _ := newFakeProvider(t, access, "refresh-1", identity)

	client := New(&Config{BaseURL: server.URL, APIKey: "test-key"})

	got, rotated, err := client.ResolveSession(context.Background(), access, "refresh-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
	// 令牌仍有效，不应发生轮换
	assert.Nil(t, rotated)
}

func TestResolveSession_ExpiredAccessTokenRefreshes(t *testing.T) {
	identity := Identity{ID: "user-1", Email: "vendor@example.com"}
	expired := mintToken(t, time.Now().Add(-time.Hour))
	server, want := newFakeProvider(t, "unused", "refresh-1", identity)

	client := New(&Config{BaseURL: server.URL, APIKey: "test-key"})

	got, rotated, err := client.ResolveSession(context.Background(), expired, "refresh-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
	// 过期令牌必须触发轮换，且新令牌对要回传给调用方
	require.NotNil(t, rotated)
	assert.Equal(t, want.RefreshToken, rotated.RefreshToken)
}

func TestResolveSession_NoCredentials(t *testing.T) {
	server, _ := newFakeProvider(t, "a", "r", Identity{})
	client := New(&Config{BaseURL: server.URL, APIKey: "test-key"})

	identity, rotated, err := client.ResolveSession(context.Background(), "", "")
	assert.Nil(t, identity)
	assert.Nil(t, rotated)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolveSession_InvalidRefreshToken(t *testing.T) {
	identity := Identity{ID: "user-1"}
	expired := mintToken(t, time.Now().Add(-time.Hour))
	server, _ := newFakeProvider(t, "unused", "refresh-good", identity)

	client := New(&Config{BaseURL: server.URL, APIKey: "test-key"})

	got, _, err := client.ResolveSession(context.Background(), expired, "refresh-bad")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestResolveSession_ProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := New(&Config{BaseURL: server.URL, APIKey: "test-key", Timeout: time.Second})
	access := mintToken(t, time.Now().Add(time.Hour))

	identity, _, err := client.ResolveSession(context.Background(), access, "refresh-1")
	assert.Nil(t, identity)
	// 服务故障必须以错误形式冒出，由守卫降级为未认证
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestSignInWithPassword(t *testing.T) {
	identity := Identity{ID: "user-1", Email: "vendor@example.com"}
	server, _ := newFakeProvider(t, "unused", "refresh-1", identity)
	client := New(&Config{BaseURL: server.URL, APIKey: "test-key"})

	session, user, err := client.SignInWithPassword(context.Background(), "vendor@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "user-1", user.ID)

	_, _, err = client.SignInWithPassword(context.Background(), "vendor@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenExpired(t *testing.T) {
	assert.False(t, tokenExpired(mintToken(t, time.Now().Add(time.Hour))))
	assert.True(t, tokenExpired(mintToken(t, time.Now().Add(-time.Minute))))
	// 解析不了的令牌按已过期处理，落到续期分支
	assert.True(t, tokenExpired("not-a-jwt"))
}
