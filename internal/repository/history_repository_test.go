package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
)

// TestHistoryAppendAndList 测试历史追加与按时间升序返回
func TestHistoryAppendAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewHistoryRepository(db)

	base := time.Now().Add(-time.Hour)
	entries := []*model.HistoryEntryModel{
		{ID: "h-1", DocumentID: "d-1", Actor: "p-9", Action: "return", Comment: "보완 요청", StepOrder: 1, CreatedAt: base},
		{ID: "h-2", DocumentID: "d-1", Actor: "p-9", Action: "approve", StepOrder: 1, CreatedAt: base.Add(time.Minute)},
		{ID: "h-3", DocumentID: "d-2", Actor: "p-9", Action: "reject", StepOrder: 1, CreatedAt: base},
	}
	for _, e := range entries {
		require.NoError(t, repo.Append(nil, e))
	}

	got, err := repo.ListByDocument("d-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "h-1", got[0].ID)
	assert.Equal(t, "h-2", got[1].ID)
	assert.Equal(t, "return", got[0].Action)

	got, err = repo.ListByDocument("d-2")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// TestHistoryAppendValidation 测试非法历史条目被拒绝
func TestHistoryAppendValidation(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewHistoryRepository(db)

	err := repo.Append(nil, &model.HistoryEntryModel{ID: "h-1", Actor: "p-9", Action: "approve"})
	assert.Error(t, err)

	err = repo.Append(nil, &model.HistoryEntryModel{ID: "h-2", DocumentID: "d-1", Action: "approve"})
	assert.Error(t, err)
}

// TestHistoryAppendInTransaction 测试事务回滚时历史不落库
func TestHistoryAppendInTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewHistoryRepository(db)

	_ = db.Transaction(func(tx *gorm.DB) error {
		err := repo.Append(tx, &model.HistoryEntryModel{
			ID: "h-1", DocumentID: "d-1", Actor: "p-9", Action: "approve", StepOrder: 1, CreatedAt: time.Now(),
		})
		require.NoError(t, err)
		return assert.AnError
	})

	got, err := repo.ListByDocument("d-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
