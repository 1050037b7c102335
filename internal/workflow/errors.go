package workflow

import "fmt"

// ValidationError 校验错误
// 字段值不符合模板 schema,或请求参数缺失,发生在任何数据变更之前
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on field %q: %s", e.Field, e.Reason)
}

// PermissionError 权限错误
// 权限门拒绝,或操作人与文书归属不匹配
type PermissionError struct {
	Party     string
	Operation string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("party %q is not allowed to %s", e.Party, e.Operation)
}

// NotFoundError 资源不存在
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// RoutingError 审批人路由错误
// 解析器耗尽回退链仍找不到审批人,文书创建必须中止
type RoutingError struct {
	Role   string
	Reason string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("cannot resolve approver for role %q: %s", e.Role, e.Reason)
}

// ConflictError 并发冲突错误
// 条件状态更新影响 0 行,说明另一个操作已经抢先完成了状态转换
type ConflictError struct {
	DocumentID string
	Action     Action
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("document %s was already processed, %s lost the race", e.DocumentID, e.Action)
}

// TransitionError 非法状态转换
// 归入校验类错误,表示当前状态不允许该动作
type TransitionError struct {
	From   Status
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s a document in state %q", e.Action, e.From)
}
