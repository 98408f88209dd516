package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"MenteSanaGo/models"
)

// Manager 按会话键管理仓库实例
// 每个活跃会话对应一个仓库，所有演示会话共享同一个本地槽位仓库
type Manager struct {
	local  LocalBackend
	remote RemoteBackend
	log    *zap.SugaredLogger

	mu    sync.Mutex
	repos map[string]*Repository
}

func NewManager(local LocalBackend, remote RemoteBackend, log *zap.SugaredLogger) *Manager {
	return &Manager{
		local:  local,
		remote: remote,
		log:    log,
		repos:  make(map[string]*Repository),
	}
}

// Acquire 获取会话对应的仓库，不存在时创建并绑定
func (m *Manager) Acquire(ctx context.Context, session models.Session) (*Repository, error) {
	key := session.Key()
	if key == "" {
		return nil, models.ErrNoSession
	}

	m.mu.Lock()
	if repo, ok := m.repos[key]; ok {
		m.mu.Unlock()
		return repo, nil
	}
	m.mu.Unlock()

	// 绑定可能触发远程订阅，不能持锁进行
	repo := NewRepository(m.local, m.remote, m.log)
	if err := repo.Bind(ctx, session); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.repos[key]; ok {
		// 并发请求已经建好了仓库，撤销本次绑定
		repo.Close()
		return existing, nil
	}
	m.repos[key] = repo
	m.log.Infow("仓库已绑定", "sessionKey", key, "kind", session.Kind)
	return repo, nil
}

// Release 会话结束时关闭并移除对应仓库
func (m *Manager) Release(session models.Session) {
	key := session.Key()
	if key == "" {
		return
	}

	m.mu.Lock()
	repo, ok := m.repos[key]
	delete(m.repos, key)
	m.mu.Unlock()

	if ok {
		repo.Close()
		m.log.Infow("仓库已释放", "sessionKey", key)
	}
}

// Close 关闭全部仓库，进程退出时调用
func (m *Manager) Close() {
	m.mu.Lock()
	repos := make([]*Repository, 0, len(m.repos))
	for _, repo := range m.repos {
		repos = append(repos, repo)
	}
	m.repos = make(map[string]*Repository)
	m.mu.Unlock()

	for _, repo := range repos {
		repo.Close()
	}
}
