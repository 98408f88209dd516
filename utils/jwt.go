package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"MenteSanaGo/models"
)

var jwtKey []byte

// InitJWT 初始化签名密钥，必须在生成或解析令牌前调用
func InitJWT(secret string) {
	jwtKey = []byte(secret)
}

// Claims 自定义JWT声明，携带会话类型和用户ID
type Claims struct {
	Kind   string `json:"kind"`
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Session 从声明还原会话值
func (c *Claims) Session() models.Session {
	switch models.SessionKind(c.Kind) {
	case models.SessionDemo:
		return models.DemoSession()
	case models.SessionAuthenticated:
		return models.AuthenticatedSession(c.UserID)
	default:
		return models.AnonymousSession()
	}
}

// GenerateToken 为会话生成JWT令牌
func GenerateToken(session models.Session) (string, error) {
	claims := &Claims{
		Kind:   string(session.Kind),
		UserID: session.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour * 30)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ParseToken 解析JWT令牌
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("无效的令牌")
}
