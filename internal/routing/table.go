package routing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table 角色解析规则表
// 依赖注入的查找表,替换或扩展角色映射不需要改动解析器控制流
type Table map[Role]Rule

// tableFile 规则表文件结构
type tableFile struct {
	DefaultParty string          `yaml:"default_party"`
	Rules        map[string]Rule `yaml:"rules"`
}

// LoadTable 从 YAML 文件加载规则表
// 返回规则表和兜底管理员姓名
func LoadTable(path string) (Table, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read routing table: %w", err)
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, "", fmt.Errorf("failed to parse routing table: %w", err)
	}

	table := make(Table, len(file.Rules))
	for role, rule := range file.Rules {
		if rule.Name == "" {
			return nil, "", fmt.Errorf("routing rule for role %q has no target name", role)
		}
		table[Role(role)] = rule
	}
	return table, file.DefaultParty, nil
}

// DefaultTable 内置规则表
// 配置文件缺失时的默认映射,与 seed 数据保持一致
func DefaultTable() Table {
	return Table{
		RoleDirectManager:  {Title: "팀장", Unit: "", Name: "김부장"},
		RoleDepartmentHead: {Title: "부서장", Unit: "경영지원팀", Name: "박실장"},
		RoleAccountingLead: {Title: "회계팀장", Unit: "회계팀", Name: "이과장"},
		RoleSalesLead:      {Title: "영업팀장", Unit: "영업팀", Name: "최팀장"},
		RoleDirector:       {Title: "이사", Unit: "경영지원팀", Name: "정이사"},
		RoleChiefExecutive: {Title: "대표", Unit: "경영지원팀", Name: "홍대표"},
	}
}
