package repository

import (
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"gorm.io/gorm"
)

// AuditLogRepository 审计日志仓储接口
type AuditLogRepository interface {
	Save(log *model.AuditLogModel) error
	FindByResource(resourceType, resourceID string) ([]*model.AuditLogModel, error)
	FindByParty(partyID string, limit int) ([]*model.AuditLogModel, error)
}

// auditLogRepository 审计日志仓储实现
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository 创建审计日志仓储
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Save 保存审计日志
func (r *auditLogRepository) Save(log *model.AuditLogModel) error {
	if err := log.Validate(); err != nil {
		return err
	}
	return r.db.Create(log).Error
}

// FindByResource 按资源查找审计日志
func (r *auditLogRepository) FindByResource(resourceType, resourceID string) ([]*model.AuditLogModel, error) {
	var logs []*model.AuditLogModel
	err := r.db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// FindByParty 按操作人查找审计日志
func (r *auditLogRepository) FindByParty(partyID string, limit int) ([]*model.AuditLogModel, error) {
	var logs []*model.AuditLogModel
	query := r.db.Where("party_id = ?", partyID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&logs).Error
	return logs, err
}
