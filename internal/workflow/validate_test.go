package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bp4sp4/NMS-System-sub000/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func testFields() []model.FieldSchema {
	return []model.FieldSchema{
		{Name: "reason", Label: "사유", Kind: model.FieldKindText, Required: true, Max: floatPtr(100)},
		{Name: "days", Label: "일수", Kind: model.FieldKindNumber, Required: true, Min: floatPtr(0.5), Max: floatPtr(30)},
		{Name: "start_date", Label: "시작일", Kind: model.FieldKindDate},
		{Name: "half_day", Label: "반차여부", Kind: model.FieldKindBool},
		{Name: "kind", Label: "종류", Kind: model.FieldKindSelect, Options: []string{"연차", "반차", "병가"}},
	}
}

// TestValidateValuesLax 测试创建/编辑阶段的宽松校验
func TestValidateValuesLax(t *testing.T) {
	fields := testFields()

	// 部分填写,缺少必填字段也通过
	err := ValidateValues(fields, map[string]interface{}{"reason": "가족 행사"}, false)
	assert.NoError(t, err)

	// 空 values 通过
	assert.NoError(t, ValidateValues(fields, nil, false))

	// 未声明的字段被拒绝
	err = ValidateValues(fields, map[string]interface{}{"extra": "x"}, false)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "extra", ve.Field)
}

// TestValidateValuesRequired 测试提交阶段的必填校验
func TestValidateValuesRequired(t *testing.T) {
	fields := testFields()

	// 缺少必填字段 days
	err := ValidateValues(fields, map[string]interface{}{"reason": "개인 사정"}, true)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "days", ve.Field)

	// 必填字段为空字符串同样失败
	err = ValidateValues(fields, map[string]interface{}{"reason": "", "days": 1.0}, true)
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "reason", ve.Field)

	// 必填齐全通过
	err = ValidateValues(fields, map[string]interface{}{"reason": "개인 사정", "days": 2.0}, true)
	assert.NoError(t, err)
}

// TestValidateValuesKinds 测试类型与边界校验
func TestValidateValuesKinds(t *testing.T) {
	fields := testFields()
	var ve *ValidationError

	// 数字字段给了字符串
	err := ValidateValues(fields, map[string]interface{}{"days": "three"}, false)
	assert.ErrorAs(t, err, &ve)

	// 超出上界
	err = ValidateValues(fields, map[string]interface{}{"days": 45.0}, false)
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "days", ve.Field)

	// 低于下界
	err = ValidateValues(fields, map[string]interface{}{"days": 0.0}, false)
	assert.ErrorAs(t, err, &ve)

	// JSON 解码出的整数同样接受
	assert.NoError(t, ValidateValues(fields, map[string]interface{}{"days": 3}, false))

	// bool 字段
	assert.NoError(t, ValidateValues(fields, map[string]interface{}{"half_day": true}, false))
	err = ValidateValues(fields, map[string]interface{}{"half_day": "yes"}, false)
	assert.ErrorAs(t, err, &ve)

	// select 字段选项外的值被拒绝
	assert.NoError(t, ValidateValues(fields, map[string]interface{}{"kind": "연차"}, false))
	err = ValidateValues(fields, map[string]interface{}{"kind": "경조사"}, false)
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "kind", ve.Field)

	// 文本超长
	long := make([]rune, 101)
	for i := range long {
		long[i] = '가'
	}
	err = ValidateValues(fields, map[string]interface{}{"reason": string(long)}, false)
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "reason", ve.Field)

	// nil 值在宽松阶段跳过类型检查
	assert.NoError(t, ValidateValues(fields, map[string]interface{}{"days": nil}, false))
}
