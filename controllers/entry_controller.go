package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"MenteSanaGo/middleware"
	"MenteSanaGo/models"
	"MenteSanaGo/store"
)

// EntryController 记录相关接口
type EntryController struct {
	manager *store.Manager
}

func NewEntryController(manager *store.Manager) *EntryController {
	return &EntryController{manager: manager}
}

// ListEntries 返回当前会话观察到的记录列表
func (ec *EntryController) ListEntries(c *gin.Context) {
	repo, err := ec.manager.Acquire(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.EntryListResponse{Entries: repo.List()})
}

// SaveEntry 保存记录，editingId 非空时为编辑
func (ec *EntryController) SaveEntry(c *gin.Context) {
	var req models.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	repo, err := ec.manager.Acquire(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	id, err := repo.Save(c.Request.Context(), req.Draft, req.EditingID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "记录保存成功"
	if req.EditingID != "" {
		message = "记录更新成功"
	}
	c.JSON(http.StatusOK, models.SaveEntryResponse{ID: id, Message: message})
}

// DeleteEntry 删除记录
func (ec *EntryController) DeleteEntry(c *gin.Context) {
	repo, err := ec.manager.Acquire(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "记录删除成功"})
}

// ExportEntries 导出全部记录为备份文件
func (ec *EntryController) ExportEntries(c *gin.Context) {
	repo, err := ec.manager.Acquire(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	document, err := repo.ExportAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+store.BackupFilename(time.Now()))
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(document))
}

// ImportEntries 导入备份文件，请求体为 JSON 数组原文
func (ec *EntryController) ImportEntries(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "读取请求体失败"})
		return
	}

	repo, err := ec.manager.Acquire(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	count, err := repo.ImportAll(c.Request.Context(), string(body))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ImportResponse{Imported: count, Message: "数据导入成功"})
}

// respondError 把仓库错误分类转换为HTTP状态码
func respondError(c *gin.Context, err error) {
	var validationErrs models.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "记录校验失败",
			"fields": validationErrs,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrNoSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrEmptyState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrBackendUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrStorageCorrupt):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}
