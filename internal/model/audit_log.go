package model

import (
	"errors"
	"time"
)

// AuditLogModel 审计日志数据模型
// 记录所有引擎变更操作的操作轨迹,与审批历史(HistoryEntry)分开:
// 历史是审批决定的法定记录,审计日志是运维排查用的操作流水
type AuditLogModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`
	PartyID      string    `gorm:"type:varchar(64);not null;index"`
	Action       string    `gorm:"type:varchar(64);not null;index"` // create/edit/submit/approve/reject/return/cancel/favorite
	ResourceType string    `gorm:"type:varchar(32);not null"`       // document/template/favorite
	ResourceID   string    `gorm:"type:varchar(64);not null;index"`
	RequestID    string    `gorm:"type:varchar(64);index"`
	IP           string    `gorm:"type:varchar(45)"` // IPv4 或 IPv6
	Details      []byte    `gorm:"type:jsonb"`       // 操作详情
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// Validate 验证审计日志模型
func (alm *AuditLogModel) Validate() error {
	if alm.ID == "" {
		return errors.New("audit log ID is required")
	}
	if alm.PartyID == "" {
		return errors.New("party ID is required")
	}
	if alm.Action == "" {
		return errors.New("action is required")
	}
	if alm.ResourceType == "" {
		return errors.New("resource type is required")
	}
	if alm.ResourceID == "" {
		return errors.New("resource ID is required")
	}
	return nil
}
