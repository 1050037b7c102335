package directory

import (
	"errors"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
	"gorm.io/gorm"
)

// OrgContext 提交人的组织上下文
// 只用于给路由解析提供偏好信息,不参与权限判断
type OrgContext struct {
	Unit string `json:"unit"`
	Team string `json:"team"`
}

// Directory 组织目录接口
// 审批引擎消费的外部协作方,引擎侧只读
type Directory interface {
	LookupParty(name, unit string) (*model.PartyModel, error)
	GetParty(id string) (*model.PartyModel, error)
	GetContext(partyID string) (*OrgContext, error)
}

// dbDirectory 基于人员表的组织目录实现
type dbDirectory struct {
	parties repository.PartyRepository
}

// NewDirectory 创建组织目录
func NewDirectory(parties repository.PartyRepository) Directory {
	return &dbDirectory{parties: parties}
}

// LookupParty 查找人员
// unit 非空时按姓名+部门精确匹配,为空时只按姓名匹配
func (d *dbDirectory) LookupParty(name, unit string) (*model.PartyModel, error) {
	var party *model.PartyModel
	var err error
	if unit != "" {
		party, err = d.parties.FindByNameAndUnit(name, unit)
	} else {
		party, err = d.parties.FindByName(name)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &workflow.NotFoundError{Resource: "party", ID: name}
		}
		return nil, err
	}
	return party, nil
}

// GetParty 根据 ID 获取人员
func (d *dbDirectory) GetParty(id string) (*model.PartyModel, error) {
	party, err := d.parties.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &workflow.NotFoundError{Resource: "party", ID: id}
		}
		return nil, err
	}
	return party, nil
}

// GetContext 获取人员的组织上下文
func (d *dbDirectory) GetContext(partyID string) (*OrgContext, error) {
	party, err := d.GetParty(partyID)
	if err != nil {
		return nil, err
	}
	return &OrgContext{Unit: party.Unit, Team: party.Team}, nil
}
