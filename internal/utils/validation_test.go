package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bp4sp4/NMS-System-sub000/internal/utils"
)

// TestValidateID 测试 ID 格式验证
func TestValidateID(t *testing.T) {
	assert.NoError(t, utils.ValidateID("d-1"))
	assert.NoError(t, utils.ValidateID("550e8400-e29b-41d4-a716-446655440000"))
	assert.NoError(t, utils.ValidateID("tpl_expense_01"))

	assert.ErrorIs(t, utils.ValidateID(""), utils.ErrEmptyID)
	assert.ErrorIs(t, utils.ValidateID("d 1"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateID("d/1"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateID("문서-1"), utils.ErrInvalidIDFormat)
	assert.ErrorIs(t, utils.ValidateID(strings.Repeat("a", 65)), utils.ErrIDTooLong)
}

// TestTrimAndValidate 测试字符串清理验证
func TestTrimAndValidate(t *testing.T) {
	s, err := utils.TrimAndValidate("  휴가신청  ", 100)
	assert.NoError(t, err)
	assert.Equal(t, "휴가신청", s)

	_, err = utils.TrimAndValidate("   ", 100)
	assert.ErrorIs(t, err, utils.ErrEmptyString)

	_, err = utils.TrimAndValidate(strings.Repeat("a", 11), 10)
	assert.ErrorIs(t, err, utils.ErrStringTooLong)

	// maxLen 为 0 不限长
	_, err = utils.TrimAndValidate(strings.Repeat("a", 500), 0)
	assert.NoError(t, err)
}
