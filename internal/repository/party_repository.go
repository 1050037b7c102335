package repository

import (
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"gorm.io/gorm"
)

// PartyRepository 人员仓储接口
type PartyRepository interface {
	Save(party *model.PartyModel) error
	FindByID(id string) (*model.PartyModel, error)
	FindByNameAndUnit(name, unit string) (*model.PartyModel, error)
	FindByName(name string) (*model.PartyModel, error)
	FindAll() ([]*model.PartyModel, error)
}

// partyRepository 人员仓储实现
type partyRepository struct {
	db *gorm.DB
}

// NewPartyRepository 创建人员仓储
func NewPartyRepository(db *gorm.DB) PartyRepository {
	return &partyRepository{db: db}
}

// Save 保存人员
func (r *partyRepository) Save(party *model.PartyModel) error {
	if err := party.Validate(); err != nil {
		return err
	}
	return r.db.Save(party).Error
}

// FindByID 根据 ID 查找人员
func (r *partyRepository) FindByID(id string) (*model.PartyModel, error) {
	var party model.PartyModel
	if err := r.db.Where("id = ?", id).First(&party).Error; err != nil {
		return nil, err
	}
	return &party, nil
}

// FindByNameAndUnit 按姓名和部门精确查找
func (r *partyRepository) FindByNameAndUnit(name, unit string) (*model.PartyModel, error) {
	var party model.PartyModel
	if err := r.db.Where("name = ? AND unit = ?", name, unit).First(&party).Error; err != nil {
		return nil, err
	}
	return &party, nil
}

// FindByName 仅按姓名查找(任意部门),同名取最早创建的一条
func (r *partyRepository) FindByName(name string) (*model.PartyModel, error) {
	var party model.PartyModel
	if err := r.db.Where("name = ?", name).Order("created_at ASC").First(&party).Error; err != nil {
		return nil, err
	}
	return &party, nil
}

// FindAll 查找所有人员
func (r *partyRepository) FindAll() ([]*model.PartyModel, error) {
	var parties []*model.PartyModel
	err := r.db.Order("unit ASC, name ASC").Find(&parties).Error
	return parties, err
}
