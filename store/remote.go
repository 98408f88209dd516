package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"MenteSanaGo/models"
	"MenteSanaGo/utils"
)

// RemoteStore 远程多设备存储，按用户隔离的记录集合
// ID 和 CreatedAt 由服务端分配，写入成功后通过变更总线推送
type RemoteStore struct {
	db  *gorm.DB
	bus ChangeBus
	log *zap.SugaredLogger
}

func NewRemoteStore(db *gorm.DB, bus ChangeBus, log *zap.SugaredLogger) *RemoteStore {
	return &RemoteStore{db: db, bus: bus, log: log}
}

// List 按 CreatedAt 降序返回某用户的全部记录
func (s *RemoteStore) List(ctx context.Context, userID string) ([]models.EntryRecord, error) {
	var records []models.EntryRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	return records, nil
}

// Subscribe 建立某用户的实时订阅
// 先同步回调一次当前快照，之后每次收到变更事件重新查询并回调
func (s *RemoteStore) Subscribe(ctx context.Context, userID string, onChange func([]models.EntryRecord)) (func(), error) {
	snapshot, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	unsubscribe, err := s.bus.Subscribe(userID, func() {
		records, err := s.List(context.Background(), userID)
		if err != nil {
			s.log.Warnw("订阅刷新查询失败", "userID", userID, "error", err)
			return
		}
		onChange(records)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}

	// 初始快照算作一次回调
	onChange(snapshot)
	return unsubscribe, nil
}

// Create 创建记录并发布变更事件，返回服务端分配的 ID
func (s *RemoteStore) Create(ctx context.Context, userID string, draft models.EntryDraft) (string, error) {
	record := models.EntryRecord{
		ID:        utils.GenerateID(),
		CreatedAt: time.Now().UTC(),
		UserID:    userID,
	}
	record.ApplyDraft(draft)

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	s.publish(ctx, userID)
	return record.ID, nil
}

// Update 整体覆盖可变字段，记录不存在或不属于该用户时返回 ErrNotFound
func (s *RemoteStore) Update(ctx context.Context, userID, id string, draft models.EntryDraft) error {
	var record models.EntryRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}

	record.ApplyDraft(draft)
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	s.publish(ctx, userID)
	return nil
}

// Delete 删除某用户的指定记录
func (s *RemoteStore) Delete(ctx context.Context, userID, id string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.EntryRecord{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	s.publish(ctx, userID)
	return nil
}

// publish 写入已成功，通知失败只告警不回滚
func (s *RemoteStore) publish(ctx context.Context, userID string) {
	if err := s.bus.Publish(ctx, userID); err != nil {
		s.log.Warnw("发布变更事件失败", "userID", userID, "error", err)
	}
}
