package repository

import (
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"gorm.io/gorm"
)

// HistoryRepository 审批历史仓储接口
// 只追加:接口上不存在更新和删除方法,不可变性由结构保证而非约定
type HistoryRepository interface {
	Append(tx *gorm.DB, entry *model.HistoryEntryModel) error
	ListByDocument(documentID string) ([]*model.HistoryEntryModel, error)
}

// historyRepository 审批历史仓储实现
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository 创建审批历史仓储
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Append 追加一条审批历史
// 传入 tx 时在该事务内写入,与状态转换保持原子
func (r *historyRepository) Append(tx *gorm.DB, entry *model.HistoryEntryModel) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if tx == nil {
		tx = r.db
	}
	return tx.Create(entry).Error
}

// ListByDocument 按创建时间升序返回某文书的全部审批历史
func (r *historyRepository) ListByDocument(documentID string) ([]*model.HistoryEntryModel, error) {
	var entries []*model.HistoryEntryModel
	err := r.db.Where("document_id = ?", documentID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
