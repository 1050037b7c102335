package routing_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bp4sp4/NMS-System-sub000/internal/routing"
)

// TestLoadTable 测试从 YAML 文件加载规则表
func TestLoadTable(t *testing.T) {
	content := `
default_party: 관리자
rules:
  chief_executive:
    title: 대표
    unit: 경영지원팀
    name: 홍대표
  direct_manager:
    title: 팀장
    name: 김부장
`
	path := filepath.Join(t.TempDir(), "routing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, defaultParty, err := routing.LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "관리자", defaultParty)
	assert.Len(t, table, 2)
	assert.Equal(t, "홍대표", table[routing.RoleChiefExecutive].Name)
	assert.Equal(t, "경영지원팀", table[routing.RoleChiefExecutive].Unit)
	assert.Equal(t, "", table[routing.RoleDirectManager].Unit)
}

// TestLoadTableMissingName 测试缺少目标姓名的规则被拒绝
func TestLoadTableMissingName(t *testing.T) {
	content := `
rules:
  director:
    title: 이사
    unit: 경영지원팀
`
	path := filepath.Join(t.TempDir(), "routing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, _, err := routing.LoadTable(path)
	assert.Error(t, err)
}

// TestLoadTableFileNotFound 测试文件不存在
func TestLoadTableFileNotFound(t *testing.T) {
	_, _, err := routing.LoadTable("/nonexistent/routing.yaml")
	assert.Error(t, err)
}

// TestDefaultTable 测试内置规则表覆盖全部角色
func TestDefaultTable(t *testing.T) {
	table := routing.DefaultTable()
	for _, role := range []routing.Role{
		routing.RoleDirectManager,
		routing.RoleDepartmentHead,
		routing.RoleAccountingLead,
		routing.RoleSalesLead,
		routing.RoleDirector,
		routing.RoleChiefExecutive,
	} {
		rule, ok := table[role]
		assert.True(t, ok, "role %s should have a rule", role)
		assert.NotEmpty(t, rule.Name)
	}
}
