package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bp4sp4/NMS-System-sub000/internal/database"
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
	"github.com/bp4sp4/NMS-System-sub000/internal/service"
	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
)

// setupFavoriteService 构建收藏服务测试环境
func setupFavoriteService(t *testing.T) service.FavoriteService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	templates := repository.NewTemplateRepository(db)
	tpl := &model.TemplateModel{
		ID:        "t-1",
		Name:      "휴가신청서",
		Category:  "근태",
		Active:    true,
		Fields:    []byte(`[]`),
		Flow:      []byte(`[]`),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, templates.Save(tpl))

	return service.NewFavoriteService(repository.NewFavoriteRepository(db), templates, nil)
}

// TestFavoriteToggle 测试收藏开关
func TestFavoriteToggle(t *testing.T) {
	svc := setupFavoriteService(t)
	ctx := context.Background()

	// 第一次切换: 收藏
	on, err := svc.Toggle(ctx, "p-1", "t-1")
	require.NoError(t, err)
	assert.True(t, on)

	favs, err := svc.List("p-1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "t-1", favs[0].TemplateID)

	// 第二次切换: 取消收藏
	on, err = svc.Toggle(ctx, "p-1", "t-1")
	require.NoError(t, err)
	assert.False(t, on)

	favs, err = svc.List("p-1")
	require.NoError(t, err)
	assert.Empty(t, favs)

	// 收藏是按人隔离的
	_, err = svc.Toggle(ctx, "p-2", "t-1")
	require.NoError(t, err)
	favs, err = svc.List("p-1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

// TestFavoriteToggleTemplateNotFound 测试收藏不存在的模板
func TestFavoriteToggleTemplateNotFound(t *testing.T) {
	svc := setupFavoriteService(t)

	_, err := svc.Toggle(context.Background(), "p-1", "t-missing")
	var nf *workflow.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
