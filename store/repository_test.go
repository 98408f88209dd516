package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"MenteSanaGo/models"
)

// fakeLocal 内存实现的本地后端，newest-first 维护记录
type fakeLocal struct {
	records    []models.EntryRecord
	nextID     int
	failDelete bool
	failCreate bool
}

func (f *fakeLocal) List() ([]models.EntryRecord, error) {
	return cloneRecords(f.records), nil
}

func (f *fakeLocal) Create(draft models.EntryDraft) (models.EntryRecord, error) {
	if f.failCreate {
		return models.EntryRecord{}, models.ErrStorageCorrupt
	}
	f.nextID++
	record := models.EntryRecord{
		ID:        fmt.Sprintf("local-%d", f.nextID),
		CreatedAt: time.Now().UTC().Add(time.Duration(f.nextID) * time.Millisecond),
	}
	record.ApplyDraft(draft)
	f.records = append([]models.EntryRecord{record}, f.records...)
	return record, nil
}

func (f *fakeLocal) CreateBatch(drafts []models.EntryDraft) ([]models.EntryRecord, error) {
	created := make([]models.EntryRecord, 0, len(drafts))
	for _, draft := range drafts {
		record, err := f.Create(draft)
		if err != nil {
			return nil, err
		}
		created = append(created, record)
	}
	return created, nil
}

func (f *fakeLocal) Update(id string, draft models.EntryDraft) (models.EntryRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].ApplyDraft(draft)
			return f.records[i], nil
		}
	}
	return models.EntryRecord{}, models.ErrNotFound
}

func (f *fakeLocal) Delete(id string) error {
	if f.failDelete {
		return models.ErrStorageCorrupt
	}
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// fakeRemote 内存实现的远程后端，每次写入后把完整快照推给订阅回调
type fakeRemote struct {
	mu           sync.Mutex
	records      map[string][]models.EntryRecord
	onChange     func([]models.EntryRecord)
	feedUser     string
	nextID       int
	failDelete   bool
	failCreate   bool
	subscribed   int
	unsubscribed int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{records: make(map[string][]models.EntryRecord)}
}

func (f *fakeRemote) Subscribe(ctx context.Context, userID string, onChange func([]models.EntryRecord)) (func(), error) {
	f.mu.Lock()
	f.subscribed++
	f.onChange = onChange
	f.feedUser = userID
	snapshot := cloneRecords(f.records[userID])
	f.mu.Unlock()

	onChange(snapshot)
	return func() {
		f.mu.Lock()
		f.unsubscribed++
		f.onChange = nil
		f.mu.Unlock()
	}, nil
}

func (f *fakeRemote) push(userID string) {
	f.mu.Lock()
	onChange := f.onChange
	var snapshot []models.EntryRecord
	if onChange != nil && f.feedUser == userID {
		snapshot = cloneRecords(f.records[userID])
	} else {
		onChange = nil
	}
	f.mu.Unlock()
	if onChange != nil {
		onChange(snapshot)
	}
}

func (f *fakeRemote) Create(ctx context.Context, userID string, draft models.EntryDraft) (string, error) {
	if f.failCreate {
		return "", models.ErrBackendUnavailable
	}
	f.mu.Lock()
	f.nextID++
	record := models.EntryRecord{
		ID:        fmt.Sprintf("remote-%d", f.nextID),
		CreatedAt: time.Now().UTC().Add(time.Duration(f.nextID) * time.Millisecond),
		UserID:    userID,
	}
	record.ApplyDraft(draft)
	f.records[userID] = append([]models.EntryRecord{record}, f.records[userID]...)
	f.mu.Unlock()

	f.push(userID)
	return record.ID, nil
}

func (f *fakeRemote) Update(ctx context.Context, userID, id string, draft models.EntryDraft) error {
	f.mu.Lock()
	found := false
	for i := range f.records[userID] {
		if f.records[userID][i].ID == id {
			f.records[userID][i].ApplyDraft(draft)
			found = true
			break
		}
	}
	f.mu.Unlock()
	if !found {
		return models.ErrNotFound
	}
	f.push(userID)
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, userID, id string) error {
	if f.failDelete {
		return models.ErrBackendUnavailable
	}
	f.mu.Lock()
	found := false
	list := f.records[userID]
	for i := range list {
		if list[i].ID == id {
			f.records[userID] = append(list[:i], list[i+1:]...)
			found = true
			break
		}
	}
	f.mu.Unlock()
	if !found {
		return models.ErrNotFound
	}
	f.push(userID)
	return nil
}

func newTestRepository() (*Repository, *fakeLocal, *fakeRemote) {
	local := &fakeLocal{}
	remote := newFakeRemote()
	return NewRepository(local, remote, zap.NewNop().Sugar()), local, remote
}

func TestRepositoryUnboundRejectsMutations(t *testing.T) {
	repo, _, _ := newTestRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, testDraft("x"), "")
	assert.ErrorIs(t, err, models.ErrNoSession)
	assert.ErrorIs(t, repo.Delete(ctx, "any"), models.ErrNoSession)
	_, err = repo.ImportAll(ctx, "[]")
	assert.ErrorIs(t, err, models.ErrNoSession)
	assert.Empty(t, repo.List())
}

func TestRepositorySaveValidation(t *testing.T) {
	repo, _, _ := newTestRepository()
	require.NoError(t, repo.Bind(context.Background(), models.DemoSession()))

	draft := testDraft("")
	draft.Intensity = 11
	_, err := repo.Save(context.Background(), draft, "")

	var validationErrs models.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	// 两个违规字段都要列出
	assert.Len(t, validationErrs, 2)
}

func TestRepositoryDemoSaveAndList(t *testing.T) {
	repo, _, _ := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.DemoSession()))

	id, err := repo.Save(ctx, testDraft("demo entry"), "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	records := repo.List()
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)

	// 编辑保持 ID 不变
	edited := testDraft("demo entry edited")
	savedID, err := repo.Save(ctx, edited, id)
	require.NoError(t, err)
	assert.Equal(t, id, savedID)
	assert.Equal(t, "demo entry edited", repo.List()[0].Situation)
}

func TestRepositoryRemoteSaveDeliveredByFeed(t *testing.T) {
	repo, _, remote := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.AuthenticatedSession("u1")))

	id, err := repo.Save(ctx, testDraft("remote entry"), "")
	require.NoError(t, err)

	records := repo.List()
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, 1, remote.subscribed)
}

// 删除失败后观察到的序列必须与删除前逐元素一致
func TestRepositoryDeleteRollback(t *testing.T) {
	repo, _, remote := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.AuthenticatedSession("u1")))

	for _, situation := range []string{"one", "two", "three"} {
		_, err := repo.Save(ctx, testDraft(situation), "")
		require.NoError(t, err)
	}
	before := repo.List()
	require.Len(t, before, 3)

	remote.failDelete = true
	err := repo.Delete(ctx, before[1].ID)
	require.ErrorIs(t, err, models.ErrBackendUnavailable)

	after := repo.List()
	require.Len(t, after, 3)
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Situation, after[i].Situation)
	}
}

// 乐观删除先把记录从观察状态移除，失败后再恢复
func TestRepositoryDeleteOptimisticThenRollback(t *testing.T) {
	repo, _, remote := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.AuthenticatedSession("u1")))

	id, err := repo.Save(ctx, testDraft("victim"), "")
	require.NoError(t, err)

	var sizes []int
	unsubscribe := repo.Subscribe(func(records []models.EntryRecord) {
		sizes = append(sizes, len(records))
	})
	defer unsubscribe()
	require.Equal(t, []int{1}, sizes) // 初始快照

	remote.failDelete = true
	require.Error(t, repo.Delete(ctx, id))

	// 先看到乐观移除后的空列表，再看到回滚后的原序列
	require.Equal(t, []int{1, 0, 1}, sizes)
}

func TestRepositoryDeleteSuccess(t *testing.T) {
	repo, _, _ := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.DemoSession()))

	id, err := repo.Save(ctx, testDraft("to delete"), "")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	assert.Empty(t, repo.List())
}

// 重新绑定必须先撤销旧订阅，任意时刻最多一个订阅存在
func TestRepositoryRebindTearsDownSubscription(t *testing.T) {
	repo, _, remote := newTestRepository()
	ctx := context.Background()

	require.NoError(t, repo.Bind(ctx, models.AuthenticatedSession("u1")))
	_, err := repo.Save(ctx, testDraft("u1 entry"), "")
	require.NoError(t, err)

	staleFeed := remote.onChange
	staleSnapshot := cloneRecords(remote.records["u1"])

	require.NoError(t, repo.Bind(ctx, models.AuthenticatedSession("u2")))
	assert.Equal(t, 2, remote.subscribed)
	assert.Equal(t, 1, remote.unsubscribed)
	assert.Empty(t, repo.List())

	// 过期订阅的推送被代数计数器丢弃
	staleFeed(staleSnapshot)
	assert.Empty(t, repo.List())
}

func TestRepositoryLogoutStopsDeliveries(t *testing.T) {
	repo, _, remote := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.AuthenticatedSession("u1")))

	staleFeed := remote.onChange
	repo.Close()
	assert.Equal(t, 1, remote.unsubscribed)

	staleFeed([]models.EntryRecord{{ID: "ghost"}})
	assert.Empty(t, repo.List())
}

func TestRepositoryExportEmptyState(t *testing.T) {
	repo, _, _ := newTestRepository()
	require.NoError(t, repo.Bind(context.Background(), models.DemoSession()))

	_, err := repo.ExportAll()
	assert.ErrorIs(t, err, models.ErrEmptyState)
}

func TestRepositoryExportImportRoundTrip(t *testing.T) {
	repo, _, _ := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.DemoSession()))

	_, err := repo.Save(ctx, testDraft("exported"), "")
	require.NoError(t, err)

	document, err := repo.ExportAll()
	require.NoError(t, err)

	count, err := repo.ImportAll(ctx, document)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, repo.List(), 2)
}

// 导入只追加：M 条已有记录导入 N 条后得到 M+N 条，外来 ID 一律重新生成
func TestRepositoryImportNeverOverwrites(t *testing.T) {
	repo, _, _ := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.AuthenticatedSession("u1")))

	existingID, err := repo.Save(ctx, testDraft("existing"), "")
	require.NoError(t, err)

	document := `[
		{"id": "foreign-1", "date": "2024-01-05", "mood": "sad", "intensity": 7,
		 "situation": "a", "automaticThoughts": "b", "behavior": "c",
		 "selectedEmotions": ["tristeza"], "selectedDistortions": ["generalizacion"]},
		{"id": "foreign-2", "date": "2024-01-06", "mood": "happy", "intensity": 2,
		 "situation": "d", "automaticThoughts": "e", "behavior": "f",
		 "selectedEmotions": [], "selectedDistortions": []}
	]`
	count, err := repo.ImportAll(ctx, document)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records := repo.List()
	require.Len(t, records, 3)

	seen := make(map[string]bool)
	for _, record := range records {
		assert.NotEqual(t, "foreign-1", record.ID)
		assert.NotEqual(t, "foreign-2", record.ID)
		assert.False(t, seen[record.ID])
		seen[record.ID] = true
	}
	assert.True(t, seen[existingID])
}

func TestRepositoryImportInvalidFormat(t *testing.T) {
	repo, _, _ := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.DemoSession()))

	for _, document := range []string{`{}`, `null`, `"text"`, `not json`} {
		_, err := repo.ImportAll(ctx, document)
		assert.ErrorIs(t, err, models.ErrInvalidFormat, "document=%s", document)
	}
	assert.Empty(t, repo.List())
}

// 文档中任何一条不合法都整体拒绝，不做部分导入
func TestRepositoryImportRejectsInvalidEntries(t *testing.T) {
	repo, _, _ := newTestRepository()
	ctx := context.Background()
	require.NoError(t, repo.Bind(ctx, models.DemoSession()))

	document := `[
		{"date": "2024-01-05", "mood": "sad", "intensity": 7,
		 "situation": "ok", "automaticThoughts": "ok", "behavior": "ok"},
		{"date": "2024-01-06", "mood": "sad", "intensity": 99,
		 "situation": "", "automaticThoughts": "x", "behavior": "y"}
	]`
	_, err := repo.ImportAll(ctx, document)
	assert.ErrorIs(t, err, models.ErrInvalidFormat)
	assert.Empty(t, repo.List())
}

func TestManagerSharedDemoRepository(t *testing.T) {
	local := &fakeLocal{}
	remote := newFakeRemote()
	manager := NewManager(local, remote, zap.NewNop().Sugar())
	defer manager.Close()
	ctx := context.Background()

	repoA, err := manager.Acquire(ctx, models.DemoSession())
	require.NoError(t, err)
	repoB, err := manager.Acquire(ctx, models.DemoSession())
	require.NoError(t, err)
	// 所有演示会话共享同一个本地槽位仓库
	assert.Same(t, repoA, repoB)

	_, err = manager.Acquire(ctx, models.AnonymousSession())
	assert.ErrorIs(t, err, models.ErrNoSession)
}

func TestManagerRelease(t *testing.T) {
	local := &fakeLocal{}
	remote := newFakeRemote()
	manager := NewManager(local, remote, zap.NewNop().Sugar())
	ctx := context.Background()

	session := models.AuthenticatedSession("u1")
	_, err := manager.Acquire(ctx, session)
	require.NoError(t, err)
	require.Equal(t, 1, remote.subscribed)

	manager.Release(session)
	assert.Equal(t, 1, remote.unsubscribed)
}
