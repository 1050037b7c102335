package repository

import (
	"time"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"gorm.io/gorm"
)

// DocumentRepository 文书仓储接口
// TransitionStatus 是并发控制的关键:状态转换以"当前状态仍是预期状态"为
// 条件原子更新,影响 0 行表示另一个操作已抢先完成,调用方据此报告冲突
type DocumentRepository interface {
	Create(doc *model.DocumentModel) error
	Save(doc *model.DocumentModel) error
	FindByID(id string) (*model.DocumentModel, error)
	FindBySubmitter(submitter string, status string) ([]*model.DocumentModel, error)
	FindByDecisionOwner(owner string, statuses []string) ([]*model.DocumentModel, error)
	TransitionStatus(tx *gorm.DB, id string, fromStatuses []string, updates map[string]interface{}) (int64, error)
	CountByStatus() (map[string]int64, error)
}

// documentRepository 文书仓储实现
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository 创建文书仓储
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create 创建文书
func (r *documentRepository) Create(doc *model.DocumentModel) error {
	return r.db.Create(doc).Error
}

// Save 保存文书
func (r *documentRepository) Save(doc *model.DocumentModel) error {
	return r.db.Save(doc).Error
}

// FindByID 根据 ID 查找文书
func (r *documentRepository) FindByID(id string) (*model.DocumentModel, error) {
	var doc model.DocumentModel
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindBySubmitter 查找某提交人的文书,status 为空时不过滤状态
func (r *documentRepository) FindBySubmitter(submitter string, status string) ([]*model.DocumentModel, error) {
	var docs []*model.DocumentModel
	query := r.db.Where("submitter = ?", submitter)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("updated_at DESC").Find(&docs).Error
	return docs, err
}

// FindByDecisionOwner 查找等待某审批人处理的文书
func (r *documentRepository) FindByDecisionOwner(owner string, statuses []string) ([]*model.DocumentModel, error) {
	var docs []*model.DocumentModel
	query := r.db.Where("decision_owner = ?", owner)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("submitted_at ASC").Find(&docs).Error
	return docs, err
}

// TransitionStatus 条件状态更新
// 在 tx 事务内执行 UPDATE ... WHERE id = ? AND status IN (fromStatuses),
// 返回受影响行数。0 行即输掉竞争,不得重试为普通写入
func (r *documentRepository) TransitionStatus(tx *gorm.DB, id string, fromStatuses []string, updates map[string]interface{}) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	if updates == nil {
		updates = make(map[string]interface{})
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	result := tx.Model(&model.DocumentModel{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// CountByStatus 统计各状态文书数量,用于指标上报
func (r *documentRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	if err := r.db.Model(&model.DocumentModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
