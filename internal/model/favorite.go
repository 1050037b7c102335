package model

import (
	"errors"
	"time"
)

// FavoriteModel 模板收藏数据模型
// (party, template) 组合主键保证唯一,与状态机和路由完全无关
type FavoriteModel struct {
	PartyID    string    `gorm:"primaryKey;type:varchar(64)"`
	TemplateID string    `gorm:"primaryKey;type:varchar(64)"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName 指定表名
func (FavoriteModel) TableName() string {
	return "favorites"
}

// Validate 验证收藏模型
func (fm *FavoriteModel) Validate() error {
	if fm.PartyID == "" {
		return errors.New("party ID is required")
	}
	if fm.TemplateID == "" {
		return errors.New("template ID is required")
	}
	return nil
}
