package store

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"MenteSanaGo/models"
	"MenteSanaGo/utils"
)

// LocalStore 本地 SQLite 单文件存储，演示模式的持久化槽
// 只保证单进程内的原子性，多个进程同时打开同一文件不加锁（已知限制）
type LocalStore struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewLocalStore(db *gorm.DB, log *zap.SugaredLogger) *LocalStore {
	return &LocalStore{db: db, log: log}
}

// List 按 CreatedAt 降序返回全部记录
// 存储不可读时降级为空列表并告警，不会崩溃
func (s *LocalStore) List() ([]models.EntryRecord, error) {
	var records []models.EntryRecord
	if err := s.db.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		s.log.Warnw("本地存储读取失败，降级为空列表", "error", err)
		return []models.EntryRecord{}, models.ErrStorageCorrupt
	}
	return records, nil
}

// Create 分配时间戳ID和创建时间后同步写入
func (s *LocalStore) Create(draft models.EntryDraft) (models.EntryRecord, error) {
	record := models.EntryRecord{
		ID:        utils.GenerateLocalID(),
		CreatedAt: time.Now().UTC(),
	}
	record.ApplyDraft(draft)

	if err := s.db.Create(&record).Error; err != nil {
		return models.EntryRecord{}, fmt.Errorf("%w: %v", models.ErrStorageCorrupt, err)
	}
	return record, nil
}

// CreateBatch 在一个事务中按输入顺序批量追加，导入时整批一次写入
func (s *LocalStore) CreateBatch(drafts []models.EntryDraft) ([]models.EntryRecord, error) {
	records := make([]models.EntryRecord, 0, len(drafts))
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, draft := range drafts {
			record := models.EntryRecord{
				ID:        utils.GenerateLocalID(),
				CreatedAt: time.Now().UTC(),
			}
			record.ApplyDraft(draft)
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorageCorrupt, err)
	}
	return records, nil
}

// Update 整体覆盖可变字段，ID 和 CreatedAt 保持不变
func (s *LocalStore) Update(id string, draft models.EntryDraft) (models.EntryRecord, error) {
	var record models.EntryRecord
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.EntryRecord{}, models.ErrNotFound
		}
		return models.EntryRecord{}, fmt.Errorf("%w: %v", models.ErrStorageCorrupt, err)
	}

	record.ApplyDraft(draft)
	if err := s.db.Save(&record).Error; err != nil {
		return models.EntryRecord{}, fmt.Errorf("%w: %v", models.ErrStorageCorrupt, err)
	}
	return record, nil
}

// Delete 删除指定记录，不存在时返回 ErrNotFound
func (s *LocalStore) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.EntryRecord{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", models.ErrStorageCorrupt, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
