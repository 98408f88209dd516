package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"MenteSanaGo/middleware"
	"MenteSanaGo/models"
	"MenteSanaGo/store"
)

// StreamController 实时推送接口
type StreamController struct {
	manager *store.Manager
}

func NewStreamController(manager *store.Manager) *StreamController {
	return &StreamController{manager: manager}
}

// StreamEntries 以SSE方式推送观察状态快照
// 连接建立后立即推送一次当前快照，之后每次状态变化推送一次
// 客户端断开时取消订阅，任何退出路径都会执行
func (sc *StreamController) StreamEntries(c *gin.Context) {
	repo, err := sc.manager.Acquire(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	snapshots := make(chan []models.EntryRecord, 16)
	unsubscribe := repo.Subscribe(func(records []models.EntryRecord) {
		select {
		case snapshots <- records:
		default:
			// 客户端消费过慢时丢弃中间快照，下一次推送仍是完整状态
		}
	})
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case records := <-snapshots:
			c.SSEvent("snapshot", models.EntryListResponse{Entries: records})
			return true
		}
	})
}
