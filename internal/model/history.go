package model

import (
	"errors"
	"time"
)

// HistoryEntryModel 审批决定历史数据模型
// 只追加,创建后不再更新或删除;按 CreatedAt 升序即为真实审批顺序
type HistoryEntryModel struct {
	ID         string    `gorm:"primaryKey;type:varchar(64)"`
	DocumentID string    `gorm:"type:varchar(64);not null;index"`
	Actor      string    `gorm:"type:varchar(64);not null;index"` // 审批人 ID
	Action     string    `gorm:"type:varchar(32);not null"`       // approve/reject/return
	Comment    string    `gorm:"type:text"`
	StepOrder  int       `gorm:"not null"` // 决定发生时的流程步骤序号
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName 指定表名
func (HistoryEntryModel) TableName() string {
	return "history_entries"
}

// Validate 验证历史记录模型
func (hm *HistoryEntryModel) Validate() error {
	if hm.ID == "" {
		return errors.New("history entry ID is required")
	}
	if hm.DocumentID == "" {
		return errors.New("document ID is required")
	}
	if hm.Actor == "" {
		return errors.New("actor ID is required")
	}
	if hm.Action == "" {
		return errors.New("action is required")
	}
	return nil
}
