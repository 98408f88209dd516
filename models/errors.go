package models

import (
	"errors"
	"fmt"
	"strings"
)

// 仓库层统一错误分类，所有后端错误在仓库边界转换为以下错误之一
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrNoSession          = errors.New("当前没有有效会话")
	ErrBackendUnavailable = errors.New("后端存储暂时不可用")
	ErrInvalidFormat      = errors.New("导入文件格式无效")
	ErrEmptyState         = errors.New("没有可导出的记录")
	ErrStorageCorrupt     = errors.New("本地存储数据损坏")
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors 草稿校验错误集合，包含所有违规字段而不是只有第一个
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "记录校验失败: " + strings.Join(msgs, "; ")
}
