package routing

import (
	"errors"

	"github.com/bp4sp4/NMS-System-sub000/internal/directory"
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
)

// Role 抽象审批角色
// 模板的审批流用角色描述"谁来批",由解析器落到具体人
type Role string

const (
	RoleDirectManager  Role = "direct_manager"  // 直属上级
	RoleDepartmentHead Role = "department_head" // 部门负责人
	RoleAccountingLead Role = "accounting_lead" // 会计负责人
	RoleSalesLead      Role = "sales_lead"      // 销售负责人
	RoleDirector       Role = "director"        // 总监
	RoleChiefExecutive Role = "chief_executive" // 总经理
)

// Rule 角色解析规则
// 角色 → (职位, 目标部门, 目标姓名) 三元组,是"该角色由谁担任"的唯一数据源。
// 组织规模小且扁平,刻意用姓名+部门而不是完整组织树
type Rule struct {
	Title string `yaml:"title" json:"title"`
	Unit  string `yaml:"unit" json:"unit"`
	Name  string `yaml:"name" json:"name"`
}

// Resolver 审批人解析器
// 纯读操作:角色规则表 + 组织目录 → 具体审批人,不产生任何副作用。
// 回退链使组织表不完整时系统仍可用,代价是解析结果是"近似"而非权威身份
type Resolver struct {
	table        Table
	dir          directory.Directory
	defaultParty string // 兜底管理员姓名
}

// NewResolver 创建审批人解析器
func NewResolver(table Table, dir directory.Directory, defaultParty string) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{
		table:        table,
		dir:          dir,
		defaultParty: defaultParty,
	}
}

// Resolve 解析审批角色为具体审批人
// 尝试顺序固定:
//  1. 规则表映射角色到 (职位, 部门, 姓名)
//  2. 姓名+部门精确匹配
//  3. 放宽为仅姓名匹配(任意部门)
//  4. 回退到兜底管理员
//  5. 兜底管理员也不存在 → RoutingError,调用方必须中止文书创建
func (r *Resolver) Resolve(role Role, submitterCtx *directory.OrgContext) (*model.PartyModel, error) {
	rule, ok := r.table[role]
	if !ok {
		return nil, &workflow.RoutingError{Role: string(role), Reason: "no resolution rule configured"}
	}

	// 规则未指定部门时用提交人部门做偏好(如直属上级),只影响匹配目标,不绕过匹配
	unit := rule.Unit
	if unit == "" && submitterCtx != nil {
		unit = submitterCtx.Unit
	}

	// 精确匹配: 姓名 + 部门
	party, err := r.dir.LookupParty(rule.Name, unit)
	if err == nil {
		return party, nil
	}
	var nf *workflow.NotFoundError
	if !errors.As(err, &nf) {
		return nil, err
	}

	// 放宽匹配: 仅姓名
	party, err = r.dir.LookupParty(rule.Name, "")
	if err == nil {
		return party, nil
	}
	if !errors.As(err, &nf) {
		return nil, err
	}

	// 兜底管理员
	if r.defaultParty != "" {
		party, err = r.dir.LookupParty(r.defaultParty, "")
		if err == nil {
			return party, nil
		}
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	return nil, &workflow.RoutingError{
		Role:   string(role),
		Reason: "no matching party and no default party in directory",
	}
}
