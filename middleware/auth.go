package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MenteSanaGo/models"
	"MenteSanaGo/utils"
)

// AuthMiddleware 认证中间件
// 解析令牌并把会话值放入请求上下文，后续处理器显式传递会话，不读全局状态
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未提供认证信息"})
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "无效的认证信息"})
			return
		}

		c.Set("session", claims.Session())
		c.Next()
	}
}

// SessionFrom 从请求上下文取出会话值
func SessionFrom(c *gin.Context) models.Session {
	value, exists := c.Get("session")
	if !exists {
		return models.AnonymousSession()
	}
	session, ok := value.(models.Session)
	if !ok {
		return models.AnonymousSession()
	}
	return session
}
