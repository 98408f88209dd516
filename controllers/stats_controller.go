package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"MenteSanaGo/middleware"
	"MenteSanaGo/services"
	"MenteSanaGo/store"
)

// StatsController 统计接口
type StatsController struct {
	manager *store.Manager
}

func NewStatsController(manager *store.Manager) *StatsController {
	return &StatsController{manager: manager}
}

// GetStats 返回当前会话记录的派生统计数据
func (sc *StatsController) GetStats(c *gin.Context) {
	repo, err := sc.manager.Acquire(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, services.ComputeStats(repo.List()))
}
