package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MenteSanaGo/config"
	"MenteSanaGo/models"
	"MenteSanaGo/utils"
)

// AuthController 会话签发接口
// 真正的身份认证由外部协作方完成，这里只负责把认证结果变成会话令牌
type AuthController struct{}

// CreateDemoSession 签发演示会话令牌（仅本地存储，无远程身份）
func (ac *AuthController) CreateDemoSession(c *gin.Context) {
	session := models.DemoSession()
	token, err := utils.GenerateToken(session)
	if err != nil {
		config.Logger.Errorw("签发演示令牌失败", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌签发失败"})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{Token: token, Session: session})
}

// Login 为已认证用户签发登录会话令牌
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := models.AuthenticatedSession(req.UserID)
	token, err := utils.GenerateToken(session)
	if err != nil {
		config.Logger.Errorw("签发登录令牌失败", "userID", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌签发失败"})
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{Token: token, Session: session})
}
