package store

import (
	"context"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisBus 基于 Redis 发布订阅的变更总线
// 多实例部署时每个实例都能收到其他实例发布的变更
type RedisBus struct {
	rdb *redis.Client
	log *zap.SugaredLogger
}

func NewRedisBus(rdb *redis.Client, log *zap.SugaredLogger) *RedisBus {
	return &RedisBus{rdb: rdb, log: log}
}

func (b *RedisBus) channelFor(userID string) string {
	return "mentesana:entries:" + userID
}

// Publish 发布某用户的记录变更事件
func (b *RedisBus) Publish(ctx context.Context, userID string) error {
	return b.rdb.Publish(ctx, b.channelFor(userID), "changed").Err()
}

// Subscribe 订阅某用户的变更事件
func (b *RedisBus) Subscribe(userID string, notify func()) (func(), error) {
	sub := b.rdb.Subscribe(context.Background(), b.channelFor(userID))

	// 确认订阅确实建立
	if _, err := sub.Receive(context.Background()); err != nil {
		_ = sub.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-done:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				notify()
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(done)
			if err := sub.Close(); err != nil {
				b.log.Warnw("关闭Redis订阅失败", "userID", userID, "error", err)
			}
		})
	}
	return unsubscribe, nil
}

// MemoryBus 进程内变更总线，供测试和单实例部署使用
type MemoryBus struct {
	mu     sync.Mutex
	subs   map[string]map[int]func()
	nextID int
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]func())}
}

func (b *MemoryBus) Publish(ctx context.Context, userID string) error {
	b.mu.Lock()
	callbacks := make([]func(), 0, len(b.subs[userID]))
	for _, notify := range b.subs[userID] {
		callbacks = append(callbacks, notify)
	}
	b.mu.Unlock()

	// 回调在锁外执行，避免订阅方重入造成死锁
	for _, notify := range callbacks {
		notify()
	}
	return nil
}

func (b *MemoryBus) Subscribe(userID string, notify func()) (func(), error) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[int]func())
	}
	b.subs[userID][id] = notify
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], id)
			b.mu.Unlock()
		})
	}
	return unsubscribe, nil
}
