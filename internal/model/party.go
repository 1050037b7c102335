package model

import (
	"errors"
	"time"
)

// PartyModel 人员数据模型
// 组织目录的数据底座,对审批引擎只读;路由模块按姓名+部门查找审批人
type PartyModel struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`
	Name         string    `gorm:"type:varchar(64);not null;index"`
	Unit         string    `gorm:"type:varchar(64);not null;index"` // 部门
	Team         string    `gorm:"type:varchar(64)"`                // 小组
	Title        string    `gorm:"type:varchar(64)"`                // 职位
	Email        string    `gorm:"type:varchar(255)"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"` // bcrypt,仅 seed 数据使用
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName 指定表名
func (PartyModel) TableName() string {
	return "parties"
}

// Validate 验证人员模型
func (pm *PartyModel) Validate() error {
	if pm.ID == "" {
		return errors.New("party ID is required")
	}
	if pm.Name == "" {
		return errors.New("party name is required")
	}
	if pm.Unit == "" {
		return errors.New("party unit is required")
	}
	return nil
}
