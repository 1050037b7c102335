package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
	"gorm.io/gorm"
)

// FavoriteService 模板收藏服务接口
type FavoriteService interface {
	Toggle(ctx context.Context, partyID, templateID string) (bool, error)
	List(partyID string) ([]*model.FavoriteModel, error)
}

// favoriteService 模板收藏服务实现
type favoriteService struct {
	favorites   repository.FavoriteRepository
	templates   repository.TemplateRepository
	auditLogSvc AuditLogService
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(favorites repository.FavoriteRepository, templates repository.TemplateRepository, auditLogSvc AuditLogService) FavoriteService {
	return &favoriteService{
		favorites:   favorites,
		templates:   templates,
		auditLogSvc: auditLogSvc,
	}
}

// Toggle 切换收藏状态,返回切换后的状态(true = 已收藏)
func (s *favoriteService) Toggle(ctx context.Context, partyID, templateID string) (bool, error) {
	if _, err := s.templates.FindByID(templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, &workflow.NotFoundError{Resource: "template", ID: templateID}
		}
		return false, err
	}

	exists, err := s.favorites.Exists(partyID, templateID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := s.favorites.Delete(partyID, templateID); err != nil {
			return false, err
		}
	} else {
		if err := s.favorites.Create(&model.FavoriteModel{PartyID: partyID, TemplateID: templateID}); err != nil {
			return false, err
		}
	}

	if s.auditLogSvc != nil {
		details := fmt.Sprintf(`{"favorited":%t}`, !exists)
		_ = s.auditLogSvc.RecordAction(ctx, partyID, "favorite", "template", templateID, details)
	}

	return !exists, nil
}

// List 返回某人的全部收藏
func (s *favoriteService) List(partyID string) ([]*model.FavoriteModel, error) {
	return s.favorites.ListByParty(partyID)
}
