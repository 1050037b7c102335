package model

import (
	"encoding/json"
	"errors"
	"time"
)

// DocumentModel 审批文书数据模型
// Flow 字段保存创建时刻的审批流快照,模板后续修改不会影响在途文书;
// DecisionOwner 在创建和提交时各解析一次,编辑和退回不改变它
type DocumentModel struct {
	ID            string     `gorm:"primaryKey;type:varchar(64)"`
	TemplateID    string     `gorm:"type:varchar(64);not null;index"`
	Title         string     `gorm:"type:varchar(255);not null"`
	Submitter     string     `gorm:"type:varchar(64);not null;index"` // 提交人 ID
	SubmitterUnit string     `gorm:"type:varchar(64)"`                // 提交人部门(创建时快照)
	Values        []byte     `gorm:"type:jsonb;not null"`             // 表单字段值 name→value
	Status        string     `gorm:"type:varchar(32);not null;index"`
	Priority      string     `gorm:"type:varchar(16);not null;default:'normal'"`
	Flow          []byte     `gorm:"type:jsonb;not null"`            // 审批流快照 []FlowStep
	DecisionOwner string     `gorm:"type:varchar(64);index"`         // 当前审批人 ID
	CreatedAt     time.Time  `gorm:"not null;index"`
	UpdatedAt     time.Time  `gorm:"not null;index"`
	SubmittedAt   *time.Time `gorm:"index"`
}

// TableName 指定表名
func (DocumentModel) TableName() string {
	return "documents"
}

// Validate 验证文书模型
func (dm *DocumentModel) Validate() error {
	if dm.ID == "" {
		return errors.New("document ID is required")
	}
	if dm.TemplateID == "" {
		return errors.New("template ID is required")
	}
	if dm.Title == "" {
		return errors.New("document title is required")
	}
	if dm.Submitter == "" {
		return errors.New("submitter ID is required")
	}
	if dm.Status == "" {
		return errors.New("document status is required")
	}
	return nil
}

// MarshalJSON API 响应序列化,jsonb 列解码为结构化对象
func (dm DocumentModel) MarshalJSON() ([]byte, error) {
	values, err := dm.FieldValues()
	if err != nil {
		return nil, err
	}
	var steps []FlowStep
	if len(dm.Flow) > 0 {
		if steps, err = dm.FlowSnapshot(); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]interface{}{
		"id":             dm.ID,
		"template_id":    dm.TemplateID,
		"title":          dm.Title,
		"submitter":      dm.Submitter,
		"submitter_unit": dm.SubmitterUnit,
		"values":         values,
		"status":         dm.Status,
		"priority":       dm.Priority,
		"flow":           steps,
		"decision_owner": dm.DecisionOwner,
		"created_at":     dm.CreatedAt,
		"updated_at":     dm.UpdatedAt,
		"submitted_at":   dm.SubmittedAt,
	})
}

// FieldValues 反序列化表单字段值
func (dm *DocumentModel) FieldValues() (map[string]interface{}, error) {
	values := make(map[string]interface{})
	if len(dm.Values) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(dm.Values, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// SetFieldValues 序列化并设置表单字段值
func (dm *DocumentModel) SetFieldValues(values map[string]interface{}) error {
	if values == nil {
		values = make(map[string]interface{})
	}
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	dm.Values = data
	return nil
}

// FlowSnapshot 反序列化审批流快照,按 Order 升序返回
func (dm *DocumentModel) FlowSnapshot() ([]FlowStep, error) {
	var steps []FlowStep
	if err := json.Unmarshal(dm.Flow, &steps); err != nil {
		return nil, err
	}
	sortFlowSteps(steps)
	return steps, nil
}

// SetFlowSnapshot 序列化并设置审批流快照
func (dm *DocumentModel) SetFlowSnapshot(steps []FlowStep) error {
	data, err := json.Marshal(steps)
	if err != nil {
		return err
	}
	dm.Flow = data
	return nil
}
