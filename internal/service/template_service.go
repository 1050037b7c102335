package service

import (
	"errors"
	"strings"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
	"gorm.io/gorm"
)

// VisibilityRules 部门可见性规则
// 部门 → 允许的模板类别白名单。没有配置规则的部门看到全量列表。
// 这只是界面引导,真正的权限边界在 permission.Gate
type VisibilityRules map[string][]string

// TemplateService 模板服务接口
type TemplateService interface {
	List(unit string) ([]*model.TemplateModel, error)
	Get(id string) (*model.TemplateModel, error)
}

// templateService 模板服务实现
type templateService struct {
	repo       repository.TemplateRepository
	visibility VisibilityRules
}

// NewTemplateService 创建模板服务
func NewTemplateService(repo repository.TemplateRepository, visibility VisibilityRules) TemplateService {
	return &templateService{repo: repo, visibility: visibility}
}

// List 列出启用的模板,按部门可见性规则过滤
// unit 为空或没有匹配规则时返回全量(默认宽松)
func (s *templateService) List(unit string) ([]*model.TemplateModel, error) {
	tpls, err := s.repo.FindActive()
	if err != nil {
		return nil, err
	}

	if unit == "" {
		return tpls, nil
	}
	allowed, ok := s.visibility[unit]
	if !ok {
		return tpls, nil
	}

	filtered := make([]*model.TemplateModel, 0, len(tpls))
	for _, tpl := range tpls {
		if matchesCategory(tpl, allowed) {
			filtered = append(filtered, tpl)
		}
	}
	return filtered, nil
}

// Get 获取模板
func (s *templateService) Get(id string) (*model.TemplateModel, error) {
	tpl, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &workflow.NotFoundError{Resource: "template", ID: id}
		}
		return nil, err
	}
	return tpl, nil
}

// matchesCategory 判断模板类别或名称是否命中白名单关键词
func matchesCategory(tpl *model.TemplateModel, allowed []string) bool {
	for _, keyword := range allowed {
		if tpl.Category == keyword || strings.Contains(tpl.Name, keyword) {
			return true
		}
	}
	return false
}
