package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bp4sp4/NMS-System-sub000/internal/directory"
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/routing"
	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
)

// fakeDirectory 测试用内存组织目录
type fakeDirectory struct {
	parties []*model.PartyModel
}

func (d *fakeDirectory) LookupParty(name, unit string) (*model.PartyModel, error) {
	for _, p := range d.parties {
		if p.Name != name {
			continue
		}
		if unit == "" || p.Unit == unit {
			return p, nil
		}
	}
	return nil, &workflow.NotFoundError{Resource: "party", ID: name}
}

func (d *fakeDirectory) GetParty(id string) (*model.PartyModel, error) {
	for _, p := range d.parties {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, &workflow.NotFoundError{Resource: "party", ID: id}
}

func (d *fakeDirectory) GetContext(partyID string) (*directory.OrgContext, error) {
	p, err := d.GetParty(partyID)
	if err != nil {
		return nil, err
	}
	return &directory.OrgContext{Unit: p.Unit, Team: p.Team}, nil
}

func testTable() routing.Table {
	return routing.Table{
		routing.RoleChiefExecutive: {Title: "대표", Unit: "경영지원팀", Name: "홍대표"},
		routing.RoleAccountingLead: {Title: "회계팀장", Unit: "회계팀", Name: "이과장"},
		routing.RoleDirectManager:  {Title: "팀장", Unit: "", Name: "김부장"},
	}
}

// TestResolveExactMatch 测试姓名+部门精确匹配
func TestResolveExactMatch(t *testing.T) {
	dir := &fakeDirectory{parties: []*model.PartyModel{
		{ID: "p-1", Name: "홍대표", Unit: "경영지원팀", Title: "대표"},
		{ID: "p-2", Name: "홍대표", Unit: "영업팀", Title: "고문"},
	}}
	resolver := routing.NewResolver(testTable(), dir, "관리자")

	party, err := resolver.Resolve(routing.RoleChiefExecutive, nil)
	require.NoError(t, err)
	assert.Equal(t, "p-1", party.ID)
}

// TestResolveNameOnlyFallback 测试部门不匹配时放宽为仅姓名
func TestResolveNameOnlyFallback(t *testing.T) {
	// 이과장 在组织表里挂在别的部门
	dir := &fakeDirectory{parties: []*model.PartyModel{
		{ID: "p-3", Name: "이과장", Unit: "경영지원팀", Title: "과장"},
	}}
	resolver := routing.NewResolver(testTable(), dir, "관리자")

	party, err := resolver.Resolve(routing.RoleAccountingLead, nil)
	require.NoError(t, err)
	assert.Equal(t, "p-3", party.ID)
}

// TestResolveDefaultParty 测试回退到兜底管理员
func TestResolveDefaultParty(t *testing.T) {
	dir := &fakeDirectory{parties: []*model.PartyModel{
		{ID: "p-0", Name: "관리자", Unit: "경영지원팀", Title: "시스템관리자"},
	}}
	resolver := routing.NewResolver(testTable(), dir, "관리자")

	party, err := resolver.Resolve(routing.RoleChiefExecutive, nil)
	require.NoError(t, err)
	assert.Equal(t, "p-0", party.ID)
}

// TestResolveRoutingError 测试全链路失败时返回路由错误
func TestResolveRoutingError(t *testing.T) {
	resolver := routing.NewResolver(testTable(), &fakeDirectory{}, "관리자")

	_, err := resolver.Resolve(routing.RoleChiefExecutive, nil)
	var re *workflow.RoutingError
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, "chief_executive", re.Role)
}

// TestResolveUnknownRole 测试规则表里不存在的角色
func TestResolveUnknownRole(t *testing.T) {
	resolver := routing.NewResolver(testTable(), &fakeDirectory{}, "관리자")

	_, err := resolver.Resolve(routing.Role("cfo"), nil)
	var re *workflow.RoutingError
	assert.ErrorAs(t, err, &re)
}

// TestResolveSubmitterUnitBias 测试规则未指定部门时用提交人部门做偏好
func TestResolveSubmitterUnitBias(t *testing.T) {
	dir := &fakeDirectory{parties: []*model.PartyModel{
		{ID: "p-4", Name: "김부장", Unit: "영업팀", Title: "팀장"},
		{ID: "p-5", Name: "김부장", Unit: "개발팀", Title: "팀장"},
	}}
	resolver := routing.NewResolver(testTable(), dir, "관리자")

	party, err := resolver.Resolve(routing.RoleDirectManager, &directory.OrgContext{Unit: "개발팀"})
	require.NoError(t, err)
	assert.Equal(t, "p-5", party.ID)
}
