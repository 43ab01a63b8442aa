package authclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 过期判定的提前量，避免边界上白打一次必失败的校验请求
const expiryLeeway = 30 * time.Second

// tokenExpired 本地检查 access token 是否已过期
// 只读 exp 声明，不验签——签名归托管认证服务管，这里只用来省一次网络往返
// 解析不出来按已过期处理，走续期分支兜底
func tokenExpired(accessToken string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return time.Now().Add(expiryLeeway).After(exp.Time)
}
