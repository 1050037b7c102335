package workflow

// Status 文书状态
// 状态机的唯一数据源,引擎和展示层都从这里取状态定义
type Status string

const (
	StatusDraft     Status = "draft"     // 草稿
	StatusSubmitted Status = "submitted" // 已提交
	StatusPending   Status = "pending"   // 待审批
	StatusApproved  Status = "approved"  // 已批准
	StatusRejected  Status = "rejected"  // 已驳回
	StatusCancelled Status = "cancelled" // 已取消
)

// Action 状态机动作
type Action string

const (
	ActionEdit    Action = "edit"    // 编辑草稿
	ActionSubmit  Action = "submit"  // 提交
	ActionCancel  Action = "cancel"  // 取消
	ActionApprove Action = "approve" // 审批同意
	ActionReject  Action = "reject"  // 审批驳回
	ActionReturn  Action = "return"  // 退回修改
)

// transitions 状态转换表
// draft → submitted → {approved | rejected},退回转换 pending/submitted → draft,
// cancelled 只能由 draft/submitted 进入。approved/rejected/cancelled 为终态。
var transitions = map[Status]map[Action]Status{
	StatusDraft: {
		ActionEdit:   StatusDraft,
		ActionSubmit: StatusSubmitted,
		ActionCancel: StatusCancelled,
	},
	StatusSubmitted: {
		ActionCancel:  StatusCancelled,
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
		ActionReturn:  StatusDraft,
	},
	// submitted 和 pending 对引擎来说都是"等待审批"
	StatusPending: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
		ActionReturn:  StatusDraft,
	},
}

// Next 返回从 from 状态执行 action 后的目标状态
func Next(from Status, action Action) (Status, bool) {
	m, ok := transitions[from]
	if !ok {
		return "", false
	}
	to, ok := m[action]
	return to, ok
}

// CanTransition 判断状态转换是否合法
func CanTransition(from Status, action Action) bool {
	_, ok := Next(from, action)
	return ok
}

// IsTerminal 判断是否为终态
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// IsDecidable 判断文书是否处于可审批状态
func (s Status) IsDecidable() bool {
	return s == StatusSubmitted || s == StatusPending
}

// Valid 判断状态值是否合法
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// DecidableStatuses 返回所有可审批状态
// 用于仓储层的条件状态更新(乐观并发控制)
func DecidableStatuses() []string {
	return []string{string(StatusSubmitted), string(StatusPending)}
}

// DecideActions 审批动作集合
var DecideActions = map[Action]bool{
	ActionApprove: true,
	ActionReject:  true,
	ActionReturn:  true,
}

// ParseAction 解析审批动作字符串
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	switch a {
	case ActionApprove, ActionReject, ActionReturn:
		return a, true
	}
	return "", false
}

// Priority 文书优先级,仅用于展示排序,不影响路由
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid 判断优先级是否合法
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
