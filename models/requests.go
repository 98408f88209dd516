package models

// SaveEntryRequest 保存记录请求结构体
// EditingID 非空时表示编辑已有记录，否则创建新记录
type SaveEntryRequest struct {
	EditingID string     `json:"editingId"`
	Draft     EntryDraft `json:"draft"`
}

// LoginRequest 登录请求结构体
type LoginRequest struct {
	UserID string `json:"userId" binding:"required"`
}
