package workflow

import (
	"fmt"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
)

// ValidateValues 按模板字段 schema 校验表单值
// requireRequired 为 true 时(提交阶段)要求必填字段全部存在且非空;
// 创建/编辑阶段只校验已填值的类型和边界。未在 schema 中声明的字段一律拒绝
func ValidateValues(fields []model.FieldSchema, values map[string]interface{}, requireRequired bool) error {
	schema := make(map[string]model.FieldSchema, len(fields))
	for _, f := range fields {
		schema[f.Name] = f
	}

	for name, value := range values {
		field, ok := schema[name]
		if !ok {
			return &ValidationError{Field: name, Reason: "field is not declared in the template"}
		}
		if value == nil {
			continue
		}
		if err := validateValue(field, value); err != nil {
			return err
		}
	}

	if requireRequired {
		for _, f := range fields {
			if !f.Required {
				continue
			}
			value, ok := values[f.Name]
			if !ok || value == nil || isEmpty(value) {
				return &ValidationError{Field: f.Name, Reason: "required field is missing"}
			}
		}
	}

	return nil
}

// validateValue 校验单个字段值的类型和边界
func validateValue(field model.FieldSchema, value interface{}) error {
	switch field.Kind {
	case model.FieldKindText, model.FieldKindDate:
		s, ok := value.(string)
		if !ok {
			return &ValidationError{Field: field.Name, Reason: "expected a string value"}
		}
		if field.Min != nil && float64(len([]rune(s))) < *field.Min {
			return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("shorter than minimum length %v", *field.Min)}
		}
		if field.Max != nil && float64(len([]rune(s))) > *field.Max {
			return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("longer than maximum length %v", *field.Max)}
		}

	case model.FieldKindNumber:
		n, ok := toFloat(value)
		if !ok {
			return &ValidationError{Field: field.Name, Reason: "expected a numeric value"}
		}
		if field.Min != nil && n < *field.Min {
			return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("below minimum %v", *field.Min)}
		}
		if field.Max != nil && n > *field.Max {
			return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("above maximum %v", *field.Max)}
		}

	case model.FieldKindBool:
		if _, ok := value.(bool); !ok {
			return &ValidationError{Field: field.Name, Reason: "expected a boolean value"}
		}

	case model.FieldKindSelect:
		s, ok := value.(string)
		if !ok {
			return &ValidationError{Field: field.Name, Reason: "expected a string option"}
		}
		for _, opt := range field.Options {
			if s == opt {
				return nil
			}
		}
		return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("%q is not an allowed option", s)}

	default:
		return &ValidationError{Field: field.Name, Reason: fmt.Sprintf("unknown field kind %q", field.Kind)}
	}
	return nil
}

// toFloat JSON 解码出的数字可能是 float64 或整数
func toFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// isEmpty 判断值是否为"空"(必填校验用)
func isEmpty(value interface{}) bool {
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}
