package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"MenteSanaGo/models"
)

// EncodeBackup 将记录序列化为可移植的 JSON 数组
// 编码结果必须能经 DecodeBackup 往返还原（ID 和 CreatedAt 除外，导入时重新生成）
func EncodeBackup(records []models.EntryRecord) (string, error) {
	if len(records) == 0 {
		return "", models.ErrEmptyState
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("备份序列化失败: %w", err)
	}
	return string(data), nil
}

// DecodeBackup 解析备份文档
// 顶层必须是数组，否则返回 ErrInvalidFormat
// 缺失的可选字段填充默认值：alternativeThought 为空串，两个目录集合为空集
// 条目携带的 id 和 createdAt 一律忽略，导入时由存储端重新分配
func DecodeBackup(text string) ([]models.EntryDraft, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, models.ErrInvalidFormat
	}

	var drafts []models.EntryDraft
	if err := json.Unmarshal([]byte(trimmed), &drafts); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidFormat, err)
	}

	for i := range drafts {
		if drafts[i].SelectedEmotions == nil {
			drafts[i].SelectedEmotions = []string{}
		}
		if drafts[i].SelectedDistortions == nil {
			drafts[i].SelectedDistortions = []string{}
		}
	}
	return drafts, nil
}

// BackupFilename 按约定生成导出文件名 mentesana-backup-<日期>.json
func BackupFilename(t time.Time) string {
	return fmt.Sprintf("mentesana-backup-%s.json", t.Format("2006-01-02"))
}
