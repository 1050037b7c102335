package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTransitions 测试状态转换表
func TestTransitions(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		to     Status
		ok     bool
	}{
		{StatusDraft, ActionSubmit, StatusSubmitted, true},
		{StatusDraft, ActionEdit, StatusDraft, true},
		{StatusDraft, ActionCancel, StatusCancelled, true},
		{StatusDraft, ActionApprove, "", false},
		{StatusSubmitted, ActionApprove, StatusApproved, true},
		{StatusSubmitted, ActionReject, StatusRejected, true},
		{StatusSubmitted, ActionReturn, StatusDraft, true},
		{StatusSubmitted, ActionCancel, StatusCancelled, true},
		{StatusSubmitted, ActionSubmit, "", false},
		{StatusPending, ActionApprove, StatusApproved, true},
		{StatusPending, ActionReturn, StatusDraft, true},
		{StatusPending, ActionCancel, "", false},
		{StatusApproved, ActionApprove, "", false},
		{StatusRejected, ActionSubmit, "", false},
		{StatusCancelled, ActionEdit, "", false},
	}

	for _, c := range cases {
		to, ok := Next(c.from, c.action)
		assert.Equal(t, c.ok, ok, "%s + %s", c.from, c.action)
		if c.ok {
			assert.Equal(t, c.to, to, "%s + %s", c.from, c.action)
		}
		assert.Equal(t, c.ok, CanTransition(c.from, c.action))
	}
}

// TestStatusIsTerminal 测试终态判断
func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusDraft.IsTerminal())
	assert.False(t, StatusSubmitted.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

// TestStatusIsDecidable 测试可审批状态判断
func TestStatusIsDecidable(t *testing.T) {
	assert.True(t, StatusSubmitted.IsDecidable())
	assert.True(t, StatusPending.IsDecidable())
	assert.False(t, StatusDraft.IsDecidable())
	assert.False(t, StatusApproved.IsDecidable())

	assert.ElementsMatch(t, []string{"submitted", "pending"}, DecidableStatuses())
}

// TestStatusValid 测试状态合法性
func TestStatusValid(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

// TestParseAction 测试审批动作解析
func TestParseAction(t *testing.T) {
	action, ok := ParseAction("approve")
	assert.True(t, ok)
	assert.Equal(t, ActionApprove, action)

	action, ok = ParseAction("return")
	assert.True(t, ok)
	assert.Equal(t, ActionReturn, action)

	// submit 不是审批动作
	_, ok = ParseAction("submit")
	assert.False(t, ok)

	_, ok = ParseAction("delete")
	assert.False(t, ok)
}

// TestPriorityValid 测试优先级合法性
func TestPriorityValid(t *testing.T) {
	assert.True(t, PriorityNormal.Valid())
	assert.True(t, PriorityUrgent.Valid())
	assert.False(t, Priority("critical").Valid())
	assert.False(t, Priority("").Valid())
}
