package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"MenteSanaGo/models"
)

func newTestRemoteStore(t *testing.T) *RemoteStore {
	t.Helper()
	return NewRemoteStore(newTestDB(t), NewMemoryBus(), zap.NewNop().Sugar())
}

func TestRemoteStoreCreateScopedByUser(t *testing.T) {
	s := newTestRemoteStore(t)
	ctx := context.Background()

	idA, err := s.Create(ctx, "user-a", testDraft("from a"))
	require.NoError(t, err)
	_, err = s.Create(ctx, "user-b", testDraft("from b"))
	require.NoError(t, err)

	records, err := s.List(ctx, "user-a")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, idA, records[0].ID)
}

func TestRemoteStoreListOrdering(t *testing.T) {
	s := newTestRemoteStore(t)
	ctx := context.Background()

	var ids []string
	for _, situation := range []string{"one", "two", "three"} {
		id, err := s.Create(ctx, "u1", testDraft(situation))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	records, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].CreatedAt.After(records[i-1].CreatedAt))
	}
}

// 更新和删除都限定在记录属主，不属于该用户时返回 ErrNotFound
func TestRemoteStoreOwnership(t *testing.T) {
	s := newTestRemoteStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "owner", testDraft("mine"))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Update(ctx, "intruder", id, testDraft("stolen")), models.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "intruder", id), models.ErrNotFound)

	require.NoError(t, s.Update(ctx, "owner", id, testDraft("edited")))
	require.NoError(t, s.Delete(ctx, "owner", id))
}

func TestRemoteStoreUpdatePreservesIdentity(t *testing.T) {
	s := newTestRemoteStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, "u1", testDraft("original"))
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, "u1", id, testDraft("edited")))

	records, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, "edited", records[0].Situation)
}

// 订阅先同步送达初始快照，之后每次变更送达新的完整快照
func TestRemoteStoreSubscribe(t *testing.T) {
	s := newTestRemoteStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, "u1", testDraft("existing"))
	require.NoError(t, err)

	var snapshots [][]models.EntryRecord
	unsubscribe, err := s.Subscribe(ctx, "u1", func(records []models.EntryRecord) {
		snapshots = append(snapshots, records)
	})
	require.NoError(t, err)

	// 初始快照算一次回调
	require.Len(t, snapshots, 1)
	assert.Len(t, snapshots[0], 1)

	_, err = s.Create(ctx, "u1", testDraft("new"))
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[1], 2)

	// 其他用户的变更不会触发本订阅
	_, err = s.Create(ctx, "u2", testDraft("unrelated"))
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)

	// 取消订阅后不再送达，重复取消安全
	unsubscribe()
	unsubscribe()
	_, err = s.Create(ctx, "u1", testDraft("after unsubscribe"))
	require.NoError(t, err)
	assert.Len(t, snapshots, 2)
}
