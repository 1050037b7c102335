package service

import (
	"context"
	"time"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
	"github.com/google/uuid"
)

// AuditLogService 审计日志服务接口
type AuditLogService interface {
	RecordAction(ctx context.Context, partyID, action, resourceType, resourceID string, details string) error
	GetByResource(resourceType, resourceID string) ([]*model.AuditLogModel, error)
}

// auditLogService 审计日志服务实现
type auditLogService struct {
	repo repository.AuditLogRepository
}

// NewAuditLogService 创建审计日志服务
func NewAuditLogService(repo repository.AuditLogRepository) AuditLogService {
	return &auditLogService{repo: repo}
}

// RecordAction 记录一次操作
// 审计失败不应阻断业务操作,调用方通常忽略返回错误
func (s *auditLogService) RecordAction(ctx context.Context, partyID, action, resourceType, resourceID string, details string) error {
	log := &model.AuditLogModel{
		ID:           uuid.NewString(),
		PartyID:      partyID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		RequestID:    requestIDFromContext(ctx),
		Details:      []byte(details),
		CreatedAt:    time.Now(),
	}
	return s.repo.Save(log)
}

// GetByResource 查询某资源的审计日志
func (s *auditLogService) GetByResource(resourceType, resourceID string) ([]*model.AuditLogModel, error) {
	return s.repo.FindByResource(resourceType, resourceID)
}

type contextKey string

// RequestIDKey 请求 ID 在 context 中的键
const RequestIDKey contextKey = "request_id"

// requestIDFromContext 从 context 取请求 ID
func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}
