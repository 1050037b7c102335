package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bp4sp4/NMS-System-sub000/internal/database"
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
)

// setupTestDB 创建测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestDocument(id, status string) *model.DocumentModel {
	now := time.Now()
	doc := &model.DocumentModel{
		ID:            id,
		TemplateID:    "tpl-1",
		Title:         "지출결의서",
		Submitter:     "p-1",
		SubmitterUnit: "영업팀",
		Status:        status,
		Priority:      "normal",
		DecisionOwner: "p-9",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	doc.Values = []byte(`{}`)
	doc.Flow = []byte(`[{"order":1,"role":"chief_executive","required":true}]`)
	return doc
}

// TestTransitionStatus 测试条件状态更新
func TestTransitionStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDocumentRepository(db)

	require.NoError(t, repo.Create(newTestDocument("d-1", "submitted")))

	// 第一次转换成功,影响 1 行
	rows, err := repo.TransitionStatus(nil, "d-1", []string{"submitted", "pending"},
		map[string]interface{}{"status": "approved"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	doc, err := repo.FindByID("d-1")
	require.NoError(t, err)
	assert.Equal(t, "approved", doc.Status)

	// 状态已离开预期集合,第二次转换影响 0 行
	rows, err = repo.TransitionStatus(nil, "d-1", []string{"submitted", "pending"},
		map[string]interface{}{"status": "rejected"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	// 输掉竞争后状态保持不变
	doc, err = repo.FindByID("d-1")
	require.NoError(t, err)
	assert.Equal(t, "approved", doc.Status)
}

// TestTransitionStatusInTransaction 测试事务内的条件状态更新
func TestTransitionStatusInTransaction(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDocumentRepository(db)

	require.NoError(t, repo.Create(newTestDocument("d-2", "draft")))

	err := db.Transaction(func(tx *gorm.DB) error {
		rows, err := repo.TransitionStatus(tx, "d-2", []string{"draft"},
			map[string]interface{}{"status": "submitted", "submitted_at": time.Now()})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)
		return nil
	})
	require.NoError(t, err)

	doc, err := repo.FindByID("d-2")
	require.NoError(t, err)
	assert.Equal(t, "submitted", doc.Status)
	assert.NotNil(t, doc.SubmittedAt)
}

// TestFindBySubmitter 测试按提交人查询
func TestFindBySubmitter(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDocumentRepository(db)

	require.NoError(t, repo.Create(newTestDocument("d-1", "draft")))
	require.NoError(t, repo.Create(newTestDocument("d-2", "submitted")))
	other := newTestDocument("d-3", "draft")
	other.Submitter = "p-2"
	require.NoError(t, repo.Create(other))

	docs, err := repo.FindBySubmitter("p-1", "")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = repo.FindBySubmitter("p-1", "draft")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "d-1", docs[0].ID)
}

// TestFindByDecisionOwner 测试审批待办查询
func TestFindByDecisionOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDocumentRepository(db)

	require.NoError(t, repo.Create(newTestDocument("d-1", "draft")))
	require.NoError(t, repo.Create(newTestDocument("d-2", "submitted")))
	require.NoError(t, repo.Create(newTestDocument("d-3", "pending")))
	require.NoError(t, repo.Create(newTestDocument("d-4", "approved")))

	docs, err := repo.FindByDecisionOwner("p-9", []string{"submitted", "pending"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

// TestCountByStatus 测试状态分布统计
func TestCountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewDocumentRepository(db)

	require.NoError(t, repo.Create(newTestDocument("d-1", "draft")))
	require.NoError(t, repo.Create(newTestDocument("d-2", "draft")))
	require.NoError(t, repo.Create(newTestDocument("d-3", "approved")))

	counts, err := repo.CountByStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["draft"])
	assert.Equal(t, int64(1), counts["approved"])
}
