package permission

import (
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
)

// AuthorityRule 审批权限规则
// 小组织的简化设计:某个部门的某个职位持有全量审批权。
// 规则注入而非硬编码在判断逻辑里,便于调整
type AuthorityRule struct {
	Unit  string // 部门
	Title string // 职位
}

// Gate 权限门
// 引擎所有变更操作的唯一权限检查点,控制器和服务层都通过它判断,
// 不允许在别处重复实现检查逻辑
type Gate struct {
	authority AuthorityRule
}

// NewGate 创建权限门
func NewGate(authority AuthorityRule) *Gate {
	return &Gate{authority: authority}
}

// CanSubmit 判断某人是否可基于模板发起文书
// 模板停用则不可发起;部门可见性过滤只是界面引导,这里才是权限边界
func (g *Gate) CanSubmit(party *model.PartyModel, tpl *model.TemplateModel) bool {
	if party == nil || tpl == nil {
		return false
	}
	return tpl.Active
}

// CanView 判断某人是否可查看文书
// 严格单属主可见:只有原提交人可以查看。审批人在审批入口有独立的、
// 更宽的可见规则,不并入通用查看权限
func (g *Gate) CanView(partyID string, doc *model.DocumentModel) bool {
	if partyID == "" || doc == nil {
		return false
	}
	return doc.Submitter == partyID
}

// CanDecide 判断某人是否可审批文书
// 身份和部门必须同时命中权限规则,且文书处于可审批状态
func (g *Gate) CanDecide(party *model.PartyModel, doc *model.DocumentModel) bool {
	if party == nil || doc == nil {
		return false
	}
	if !workflow.Status(doc.Status).IsDecidable() {
		return false
	}
	return party.Unit == g.authority.Unit && party.Title == g.authority.Title
}
