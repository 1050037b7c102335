package model

import (
	"encoding/json"
	"errors"
	"time"
)

// FieldKind 字段数据类型
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindNumber FieldKind = "number"
	FieldKindDate   FieldKind = "date"
	FieldKindBool   FieldKind = "bool"
	FieldKindSelect FieldKind = "select"
)

// FieldSchema 模板字段定义
type FieldSchema struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Min      *float64  `json:"min,omitempty"`     // number: 最小值, text: 最小长度
	Max      *float64  `json:"max,omitempty"`     // number: 最大值, text: 最大长度
	Options  []string  `json:"options,omitempty"` // select: 可选项
}

// FlowStep 审批流步骤定义
// 文书创建时会快照整个流程,步骤顺序由 Order 决定
type FlowStep struct {
	Order    int    `json:"order"`
	Role     string `json:"role"` // 抽象审批角色,由路由模块解析为具体审批人
	Required bool   `json:"required"`
}

// TemplateModel 模板数据模型
// 对引擎只读,管理端编辑模板不会影响已创建的文书(文书持有流程快照)
type TemplateModel struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Category    string    `gorm:"type:varchar(64);not null;index"`
	Description string    `gorm:"type:text"`
	Fields      []byte    `gorm:"type:jsonb;not null"` // 序列化后的 []FieldSchema
	Flow        []byte    `gorm:"type:jsonb;not null"` // 序列化后的 []FlowStep
	Attachments []byte    `gorm:"type:jsonb"`          // 必传附件标签列表
	OwnerUnit   string    `gorm:"type:varchar(64);index"`
	Active      bool      `gorm:"not null;default:true;index"`
	SortKey     int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
	CreatedBy   string    `gorm:"type:varchar(64)"`
	UpdatedBy   string    `gorm:"type:varchar(64)"`
}

// TableName 指定表名
func (TemplateModel) TableName() string {
	return "templates"
}

// Validate 验证模板模型
func (tm *TemplateModel) Validate() error {
	if tm.ID == "" {
		return errors.New("template ID is required")
	}
	if tm.Name == "" {
		return errors.New("template name is required")
	}
	if len(tm.Fields) == 0 {
		return errors.New("template fields are required")
	}
	if len(tm.Flow) == 0 {
		return errors.New("template flow is required")
	}
	return nil
}

// FieldSchemas 反序列化字段定义
func (tm *TemplateModel) FieldSchemas() ([]FieldSchema, error) {
	var fields []FieldSchema
	if err := json.Unmarshal(tm.Fields, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// FlowSteps 反序列化审批流定义,按 Order 升序返回
func (tm *TemplateModel) FlowSteps() ([]FlowStep, error) {
	var steps []FlowStep
	if err := json.Unmarshal(tm.Flow, &steps); err != nil {
		return nil, err
	}
	sortFlowSteps(steps)
	return steps, nil
}

// sortFlowSteps 按 Order 升序排序(插入排序,步骤数很小)
func sortFlowSteps(steps []FlowStep) {
	for i := 1; i < len(steps); i++ {
		for j := i; j > 0 && steps[j].Order < steps[j-1].Order; j-- {
			steps[j], steps[j-1] = steps[j-1], steps[j]
		}
	}
}

// RequiredAttachments 反序列化必传附件标签
func (tm *TemplateModel) RequiredAttachments() ([]string, error) {
	if len(tm.Attachments) == 0 {
		return nil, nil
	}
	var labels []string
	if err := json.Unmarshal(tm.Attachments, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// MarshalJSON API 响应序列化,jsonb 列解码为结构化对象
func (tm TemplateModel) MarshalJSON() ([]byte, error) {
	var (
		fields []FieldSchema
		steps  []FlowStep
	)
	if len(tm.Fields) > 0 {
		var err error
		if fields, err = tm.FieldSchemas(); err != nil {
			return nil, err
		}
	}
	if len(tm.Flow) > 0 {
		var err error
		if steps, err = tm.FlowSteps(); err != nil {
			return nil, err
		}
	}
	attachments, err := tm.RequiredAttachments()
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]interface{}{
		"id":          tm.ID,
		"name":        tm.Name,
		"category":    tm.Category,
		"description": tm.Description,
		"fields":      fields,
		"flow":        steps,
		"attachments": attachments,
		"owner_unit":  tm.OwnerUnit,
		"active":      tm.Active,
		"sort_key":    tm.SortKey,
		"created_at":  tm.CreatedAt,
		"updated_at":  tm.UpdatedAt,
	})
}

// SetFieldSchemas 序列化并设置字段定义
func (tm *TemplateModel) SetFieldSchemas(fields []FieldSchema) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	tm.Fields = data
	return nil
}

// SetFlowSteps 序列化并设置审批流定义
func (tm *TemplateModel) SetFlowSteps(steps []FlowStep) error {
	data, err := json.Marshal(steps)
	if err != nil {
		return err
	}
	tm.Flow = data
	return nil
}
