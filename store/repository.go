package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"MenteSanaGo/models"
)

// Repository 统一的记录仓库门面
// 根据会话类型路由到本地或远程后端，调用方永远不需要自己区分后端
//
// 状态机：
//   - 匿名会话：列表为空，所有修改操作返回 ErrNoSession
//   - 演示会话：同步路由到 LocalBackend，观察状态就是本地存储的状态
//   - 登录会话：保持恰好一个远程实时订阅，观察状态是订阅最近一次推送的快照
//
// 重新绑定会话时先撤销旧订阅再建立新订阅，代数计数器保证
// 过期订阅的回调被丢弃，即使底层取消是异步完成的
type Repository struct {
	local  LocalBackend
	remote RemoteBackend
	log    *zap.SugaredLogger

	mu          sync.Mutex
	session     models.Session
	generation  uint64
	observed    []models.EntryRecord
	unsubscribe func()
	subscribers map[int]func([]models.EntryRecord)
	nextSubID   int
}

func NewRepository(local LocalBackend, remote RemoteBackend, log *zap.SugaredLogger) *Repository {
	return &Repository{
		local:       local,
		remote:      remote,
		log:         log,
		session:     models.AnonymousSession(),
		subscribers: make(map[int]func([]models.EntryRecord)),
	}
}

// Bind 绑定会话并建立对应后端的观察状态
// 任意时刻最多只有一个远程订阅存在
func (r *Repository) Bind(ctx context.Context, session models.Session) error {
	r.mu.Lock()
	r.teardownLocked()
	r.session = session
	gen := r.generation

	switch session.Kind {
	case models.SessionDemo:
		records, err := r.local.List()
		if err != nil {
			// 本地存储损坏降级为空列表，只告警不中断
			r.log.Warnw("本地存储异常，以空列表继续", "error", err)
		}
		r.observed = records
		subs, view := r.notifyLocked()
		r.mu.Unlock()
		deliver(subs, view)
		return nil

	case models.SessionAuthenticated:
		r.mu.Unlock()
		unsub, err := r.remote.Subscribe(ctx, session.UserID, func(records []models.EntryRecord) {
			r.mu.Lock()
			if r.generation != gen {
				// 过期订阅的推送直接丢弃
				r.mu.Unlock()
				return
			}
			r.observed = records
			subs, view := r.notifyLocked()
			r.mu.Unlock()
			deliver(subs, view)
		})
		if err != nil {
			r.mu.Lock()
			if r.generation == gen {
				r.session = models.AnonymousSession()
				r.observed = nil
			}
			r.mu.Unlock()
			return err
		}
		r.mu.Lock()
		if r.generation != gen {
			// 订阅建立期间发生了重新绑定，撤销本次订阅
			r.mu.Unlock()
			unsub()
			return nil
		}
		r.unsubscribe = unsub
		r.mu.Unlock()
		return nil

	default:
		r.observed = nil
		subs, view := r.notifyLocked()
		r.mu.Unlock()
		deliver(subs, view)
		return nil
	}
}

// Subscribe 注册观察状态回调，注册时立即回调一次当前快照
// 返回的取消函数可重复调用，只有第一次生效
func (r *Repository) Subscribe(onChange func([]models.EntryRecord)) func() {
	r.mu.Lock()
	id := r.nextSubID
	r.nextSubID++
	r.subscribers[id] = onChange
	view := cloneRecords(r.observed)
	r.mu.Unlock()

	// 初始快照算作一次回调
	onChange(view)

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subscribers, id)
			r.mu.Unlock()
		})
	}
}

// List 返回当前观察状态的快照
func (r *Repository) List() []models.EntryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneRecords(r.observed)
}

// Session 返回当前绑定的会话
func (r *Repository) Session() models.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}

// Save 保存记录，editingID 非空时更新已有记录，否则创建
// 远程创建不做乐观渲染，新记录由订阅推送送达
func (r *Repository) Save(ctx context.Context, draft models.EntryDraft, editingID string) (string, error) {
	if errs := models.ValidateDraft(draft); len(errs) > 0 {
		return "", errs
	}

	r.mu.Lock()
	session := r.session
	gen := r.generation
	r.mu.Unlock()

	switch session.Kind {
	case models.SessionDemo:
		var (
			record models.EntryRecord
			err    error
		)
		if editingID != "" {
			record, err = r.local.Update(editingID, draft)
		} else {
			record, err = r.local.Create(draft)
		}
		if err != nil {
			return "", err
		}
		r.refreshLocal(gen)
		return record.ID, nil

	case models.SessionAuthenticated:
		if editingID != "" {
			if err := r.remote.Update(ctx, session.UserID, editingID, draft); err != nil {
				return "", err
			}
			return editingID, nil
		}
		return r.remote.Create(ctx, session.UserID, draft)

	default:
		return "", models.ErrNoSession
	}
}

// Delete 乐观删除：先从观察状态移除，后端删除失败时按值回滚
// 回滚恢复删除前的完整序列，不重新拉取，避免可见的顺序跳动
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	session := r.session
	gen := r.generation
	if session.Kind != models.SessionDemo && session.Kind != models.SessionAuthenticated {
		r.mu.Unlock()
		return models.ErrNoSession
	}

	// 按值捕获回滚快照，删除期间到达的订阅推送不会破坏它
	snapshot := cloneRecords(r.observed)
	filtered := make([]models.EntryRecord, 0, len(r.observed))
	for _, record := range r.observed {
		if record.ID != id {
			filtered = append(filtered, record)
		}
	}
	r.observed = filtered
	subs, view := r.notifyLocked()
	r.mu.Unlock()
	deliver(subs, view)

	var err error
	switch session.Kind {
	case models.SessionDemo:
		err = r.local.Delete(id)
	case models.SessionAuthenticated:
		err = r.remote.Delete(ctx, session.UserID, id)
	}
	if err != nil {
		r.mu.Lock()
		if r.generation == gen {
			r.observed = snapshot
			subs, view := r.notifyLocked()
			r.mu.Unlock()
			deliver(subs, view)
		} else {
			r.mu.Unlock()
		}
		return err
	}

	if session.Kind == models.SessionDemo {
		r.refreshLocal(gen)
	}
	return nil
}

// ExportAll 导出当前观察到的全部记录，没有记录时返回 ErrEmptyState
func (r *Repository) ExportAll() (string, error) {
	r.mu.Lock()
	session := r.session
	records := cloneRecords(r.observed)
	r.mu.Unlock()

	if session.Kind == models.SessionAnonymous {
		return "", models.ErrNoSession
	}
	if len(records) == 0 {
		return "", models.ErrEmptyState
	}
	return EncodeBackup(records)
}

// ImportAll 导入备份文档，返回导入条数
// 外来 ID 一律丢弃并重新生成，导入只追加，不覆盖已有记录
// 远程后端逐条等待写入，控制并发压力并保持稳定的相对顺序
func (r *Repository) ImportAll(ctx context.Context, document string) (int, error) {
	drafts, err := DecodeBackup(document)
	if err != nil {
		return 0, err
	}
	// 整个文档校验通过后才开始写入，不做部分导入
	for _, draft := range drafts {
		if errs := models.ValidateDraft(draft); len(errs) > 0 {
			return 0, fmt.Errorf("%w: %v", models.ErrInvalidFormat, errs)
		}
	}

	r.mu.Lock()
	session := r.session
	gen := r.generation
	r.mu.Unlock()

	switch session.Kind {
	case models.SessionDemo:
		records, err := r.local.CreateBatch(drafts)
		if err != nil {
			return 0, err
		}
		r.refreshLocal(gen)
		return len(records), nil

	case models.SessionAuthenticated:
		for i, draft := range drafts {
			if _, err := r.remote.Create(ctx, session.UserID, draft); err != nil {
				return i, err
			}
		}
		return len(drafts), nil

	default:
		return 0, models.ErrNoSession
	}
}

// Close 关闭仓库，撤销订阅并回到匿名状态
// 关闭后过期订阅的推送不会再送达任何回调
func (r *Repository) Close() {
	r.mu.Lock()
	r.teardownLocked()
	r.session = models.AnonymousSession()
	r.observed = nil
	r.subscribers = make(map[int]func([]models.EntryRecord))
	r.mu.Unlock()
}

// teardownLocked 撤销当前订阅并推进代数，过期回调随之失效
func (r *Repository) teardownLocked() {
	r.generation++
	if r.unsubscribe != nil {
		unsub := r.unsubscribe
		r.unsubscribe = nil
		unsub()
	}
}

// refreshLocal 本地写入后重新拉取观察状态
func (r *Repository) refreshLocal(gen uint64) {
	records, err := r.local.List()
	if err != nil {
		r.log.Warnw("本地存储刷新失败", "error", err)
	}

	r.mu.Lock()
	if r.generation != gen {
		r.mu.Unlock()
		return
	}
	r.observed = records
	subs, view := r.notifyLocked()
	r.mu.Unlock()
	deliver(subs, view)
}

// notifyLocked 在持锁状态下收集订阅者和当前快照，投递在锁外进行
func (r *Repository) notifyLocked() ([]func([]models.EntryRecord), []models.EntryRecord) {
	subs := make([]func([]models.EntryRecord), 0, len(r.subscribers))
	for _, fn := range r.subscribers {
		subs = append(subs, fn)
	}
	return subs, cloneRecords(r.observed)
}

func deliver(subs []func([]models.EntryRecord), view []models.EntryRecord) {
	for _, fn := range subs {
		fn(view)
	}
}

func cloneRecords(records []models.EntryRecord) []models.EntryRecord {
	cloned := make([]models.EntryRecord, len(records))
	copy(cloned, records)
	return cloned
}
