package repository

import (
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"gorm.io/gorm"
)

// TemplateRepository 模板仓储接口
type TemplateRepository interface {
	Save(tpl *model.TemplateModel) error
	FindByID(id string) (*model.TemplateModel, error)
	FindActive() ([]*model.TemplateModel, error)
	FindAll() ([]*model.TemplateModel, error)
}

// templateRepository 模板仓储实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建模板仓储
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// Save 保存模板
func (r *templateRepository) Save(tpl *model.TemplateModel) error {
	return r.db.Save(tpl).Error
}

// FindByID 根据 ID 查找模板
func (r *templateRepository) FindByID(id string) (*model.TemplateModel, error) {
	var tpl model.TemplateModel
	if err := r.db.Where("id = ?", id).First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// FindActive 查找所有启用的模板,按排序键升序
func (r *templateRepository) FindActive() ([]*model.TemplateModel, error) {
	var tpls []*model.TemplateModel
	err := r.db.Where("active = ?", true).Order("sort_key ASC, name ASC").Find(&tpls).Error
	return tpls, err
}

// FindAll 查找所有模板
func (r *templateRepository) FindAll() ([]*model.TemplateModel, error) {
	var tpls []*model.TemplateModel
	err := r.db.Order("sort_key ASC, name ASC").Find(&tpls).Error
	return tpls, err
}
