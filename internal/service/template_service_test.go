package service_test

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
	"github.com/bp4sp4/NMS-System-sub000/internal/service"
	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
)

// setupTemplateService 构建模板服务测试环境
func setupTemplateService(t *testing.T, rules service.VisibilityRules) service.TemplateService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	repo := repository.NewTemplateRepository(db)
	seed := []struct {
		id       string
		name     string
		category string
		active   bool
		sortKey  int
	}{
		{"t-1", "휴가신청서", "근태", true, 10},
		{"t-2", "지출결의서", "회계", true, 20},
		{"t-3", "영업보고서", "영업", true, 30},
		{"t-4", "구버전 양식", "근태", false, 40},
	}
	for _, s := range seed {
		tpl := &model.TemplateModel{
			ID:        s.id,
			Name:      s.name,
			Category:  s.category,
			Active:    s.active,
			SortKey:   s.sortKey,
			Fields:    []byte(`[]`),
			Flow:      []byte(`[{"order":1,"role":"chief_executive","required":true}]`),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, repo.Save(tpl))
	}

	return service.NewTemplateService(repo, rules)
}

// TestTemplateListVisibility 测试部门可见性过滤
func TestTemplateListVisibility(t *testing.T) {
	svc := setupTemplateService(t, service.VisibilityRules{
		"영업팀": {"근태", "영업"},
		"회계팀": {"회계"},
	})

	// 영업팀 只看到白名单类别,停用模板不出现
	tpls, err := svc.List("영업팀")
	require.NoError(t, err)
	require.Len(t, tpls, 2)
	assert.Equal(t, "t-1", tpls[0].ID)
	assert.Equal(t, "t-3", tpls[1].ID)

	tpls, err = svc.List("회계팀")
	require.NoError(t, err)
	require.Len(t, tpls, 1)
	assert.Equal(t, "t-2", tpls[0].ID)

	// 没有配置规则的部门看到全量启用模板
	tpls, err = svc.List("개발팀")
	require.NoError(t, err)
	assert.Len(t, tpls, 3)

	// unit 为空同样不过滤
	tpls, err = svc.List("")
	require.NoError(t, err)
	assert.Len(t, tpls, 3)
}

// TestTemplateListNameKeyword 测试白名单关键词命中模板名称
func TestTemplateListNameKeyword(t *testing.T) {
	svc := setupTemplateService(t, service.VisibilityRules{
		"개발팀": {"지출"},
	})

	tpls, err := svc.List("개발팀")
	require.NoError(t, err)
	require.Len(t, tpls, 1)
	assert.Equal(t, "지출결의서", tpls[0].Name)
}

// TestTemplateGet 测试获取模板
func TestTemplateGet(t *testing.T) {
	svc := setupTemplateService(t, nil)

	tpl, err := svc.Get("t-1")
	require.NoError(t, err)
	assert.Equal(t, "휴가신청서", tpl.Name)

	_, err = svc.Get("t-missing")
	var nf *workflow.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
