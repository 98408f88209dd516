package store

import (
	"context"

	"MenteSanaGo/models"
)

// LocalBackend 本地存储后端契约（演示模式）
// 所有操作同步完成，仅对单进程原子，不提供跨进程锁（已知限制）
type LocalBackend interface {
	// List 按 CreatedAt 降序返回全部记录
	// 存储损坏时返回空列表和 ErrStorageCorrupt，调用方按告警处理
	List() ([]models.EntryRecord, error)
	// Create 分配 ID 和 CreatedAt 后同步落盘
	Create(draft models.EntryDraft) (models.EntryRecord, error)
	// CreateBatch 在一个事务中按输入顺序批量追加
	CreateBatch(drafts []models.EntryDraft) ([]models.EntryRecord, error)
	// Update 整体覆盖可变字段，保留 ID 和 CreatedAt
	Update(id string, draft models.EntryDraft) (models.EntryRecord, error)
	Delete(id string) error
}

// RemoteBackend 远程存储后端契约（登录模式）
// 所有操作异步依赖网络，新建记录只有通过订阅推送才对读取可见
type RemoteBackend interface {
	// Subscribe 建立实时订阅，每次集合变化时回调完整有序快照
	// 初始快照算作一次回调，返回的取消函数必须在会话结束时调用且只调用一次
	Subscribe(ctx context.Context, userID string, onChange func([]models.EntryRecord)) (func(), error)
	// Create 由服务端分配 ID 和 CreatedAt，返回新记录的 ID
	Create(ctx context.Context, userID string, draft models.EntryDraft) (string, error)
	// Update 记录不存在或不属于该用户时返回 ErrNotFound
	Update(ctx context.Context, userID, id string, draft models.EntryDraft) error
	Delete(ctx context.Context, userID, id string) error
}

// ChangeBus 记录变更通知总线，远程后端写入成功后发布变更事件
type ChangeBus interface {
	Publish(ctx context.Context, userID string) error
	// Subscribe 注册某用户的变更回调，返回取消函数
	Subscribe(userID string, notify func()) (func(), error)
}
