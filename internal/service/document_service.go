package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bp4sp4/NMS-System-sub000/internal/directory"
	"github.com/bp4sp4/NMS-System-sub000/internal/metrics"
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"github.com/bp4sp4/NMS-System-sub000/internal/permission"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
	"github.com/bp4sp4/NMS-System-sub000/internal/routing"
	"github.com/bp4sp4/NMS-System-sub000/internal/workflow"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentService 文书生命周期服务接口
// 单活跃审批人约定:只解析并约束首个流程步骤的审批人,模板声明的
// 后续步骤只作展示元数据,不参与流转(见 DESIGN.md 的设计决定记录)
type DocumentService interface {
	Create(ctx context.Context, actor *model.PartyModel, req *CreateDocumentRequest) (*model.DocumentModel, error)
	EditDraft(ctx context.Context, actor *model.PartyModel, id string, req *EditDraftRequest) (*model.DocumentModel, error)
	Submit(ctx context.Context, actor *model.PartyModel, id string) (*model.DocumentModel, error)
	Decide(ctx context.Context, actor *model.PartyModel, id string, req *DecideRequest) (*model.DocumentModel, error)
	Cancel(ctx context.Context, actor *model.PartyModel, id string) (*model.DocumentModel, error)
	Get(ctx context.Context, actor *model.PartyModel, id string) (*model.DocumentModel, error)
	ListMine(actor *model.PartyModel, status string) ([]*model.DocumentModel, error)
	ListPendingFor(actor *model.PartyModel) ([]*model.DocumentModel, error)
	History(id string) ([]*model.HistoryEntryModel, error)
}

// CreateDocumentRequest 创建文书请求
type CreateDocumentRequest struct {
	TemplateID string                 `json:"template_id" binding:"required"`
	Title      string                 `json:"title" binding:"required"`
	Values     map[string]interface{} `json:"values"`
	Priority   string                 `json:"priority"`
}

// EditDraftRequest 编辑草稿请求
type EditDraftRequest struct {
	Title  string                 `json:"title"`
	Values map[string]interface{} `json:"values" binding:"required"`
}

// DecideRequest 审批决定请求
type DecideRequest struct {
	Action  string `json:"action" binding:"required"` // approve/reject/return
	Comment string `json:"comment"`
}

// DocumentEvent 文书状态变更事件,推送给在线客户端
type DocumentEvent struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Actor      string `json:"actor"`
	Action     string `json:"action"`
}

// EventPublisher 事件发布接口,由 websocket hub 实现
type EventPublisher interface {
	PublishDocumentEvent(event *DocumentEvent, partyIDs ...string)
}

// documentService 文书生命周期服务实现
type documentService struct {
	db          *gorm.DB
	documents   repository.DocumentRepository
	templates   repository.TemplateRepository
	history     repository.HistoryRepository
	dir         directory.Directory
	resolver    *routing.Resolver
	gate        *permission.Gate
	auditLogSvc AuditLogService
	publisher   EventPublisher
}

// NewDocumentService 创建文书生命周期服务
func NewDocumentService(
	db *gorm.DB,
	documents repository.DocumentRepository,
	templates repository.TemplateRepository,
	history repository.HistoryRepository,
	dir directory.Directory,
	resolver *routing.Resolver,
	gate *permission.Gate,
	auditLogSvc AuditLogService,
	publisher EventPublisher,
) DocumentService {
	return &documentService{
		db:          db,
		documents:   documents,
		templates:   templates,
		history:     history,
		dir:         dir,
		resolver:    resolver,
		gate:        gate,
		auditLogSvc: auditLogSvc,
		publisher:   publisher,
	}
}

// Create 创建文书
// 解析首个流程步骤的审批人失败时整个创建中止,不允许留下无审批人的文书
func (s *documentService) Create(ctx context.Context, actor *model.PartyModel, req *CreateDocumentRequest) (*model.DocumentModel, error) {
	tpl, err := s.templates.FindByID(req.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &workflow.NotFoundError{Resource: "template", ID: req.TemplateID}
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	if !s.gate.CanSubmit(actor, tpl) {
		return nil, &workflow.PermissionError{Party: actor.ID, Operation: "create a document from template " + tpl.ID}
	}

	priority := workflow.Priority(req.Priority)
	if req.Priority == "" {
		priority = workflow.PriorityNormal
	}
	if !priority.Valid() {
		return nil, &workflow.ValidationError{Field: "priority", Reason: "unknown priority " + req.Priority}
	}

	fields, err := tpl.FieldSchemas()
	if err != nil {
		return nil, fmt.Errorf("failed to decode template fields: %w", err)
	}
	// 创建阶段只校验已填值,必填检查留到提交
	if err := workflow.ValidateValues(fields, req.Values, false); err != nil {
		return nil, err
	}

	steps, err := tpl.FlowSteps()
	if err != nil {
		return nil, fmt.Errorf("failed to decode template flow: %w", err)
	}
	if len(steps) == 0 {
		return nil, &workflow.ValidationError{Field: "flow", Reason: "template declares no approval steps"}
	}

	// 解析首步审批人。组织上下文来自提交人本人
	owner, err := s.resolver.Resolve(routing.Role(steps[0].Role), &directory.OrgContext{
		Unit: actor.Unit,
		Team: actor.Team,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &model.DocumentModel{
		ID:            uuid.NewString(),
		TemplateID:    tpl.ID,
		Title:         req.Title,
		Submitter:     actor.ID,
		SubmitterUnit: actor.Unit,
		Status:        string(workflow.StatusDraft),
		Priority:      string(priority),
		DecisionOwner: owner.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := doc.SetFieldValues(req.Values); err != nil {
		return nil, fmt.Errorf("failed to encode field values: %w", err)
	}
	if err := doc.SetFlowSnapshot(steps); err != nil {
		return nil, fmt.Errorf("failed to snapshot approval flow: %w", err)
	}

	if err := s.documents.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	metrics.RecordDocumentCreated()
	s.audit(ctx, actor.ID, "create", doc.ID, fmt.Sprintf(`{"template_id":%q,"title":%q}`, tpl.ID, doc.Title))

	return doc, nil
}

// EditDraft 编辑草稿
// 仅提交人可改,仅 draft 状态可改;审批人解析结果不因编辑而改变
func (s *documentService) EditDraft(ctx context.Context, actor *model.PartyModel, id string, req *EditDraftRequest) (*model.DocumentModel, error) {
	doc, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if doc.Submitter != actor.ID {
		return nil, &workflow.PermissionError{Party: actor.ID, Operation: "edit document " + id}
	}
	if workflow.Status(doc.Status) != workflow.StatusDraft {
		return nil, &workflow.TransitionError{From: workflow.Status(doc.Status), Action: workflow.ActionEdit}
	}

	tpl, err := s.templates.FindByID(doc.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	fields, err := tpl.FieldSchemas()
	if err != nil {
		return nil, fmt.Errorf("failed to decode template fields: %w", err)
	}
	if err := workflow.ValidateValues(fields, req.Values, false); err != nil {
		return nil, err
	}

	if err := doc.SetFieldValues(req.Values); err != nil {
		return nil, fmt.Errorf("failed to encode field values: %w", err)
	}
	if req.Title != "" {
		doc.Title = req.Title
	}
	doc.UpdatedAt = time.Now()

	if err := s.documents.Save(doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	s.audit(ctx, actor.ID, "edit", doc.ID, "{}")
	return doc, nil
}

// Submit 提交文书进入审批
// draft → submitted 通过条件状态更新完成,重复提交会输掉竞争并得到冲突错误;
// 审批人在提交时重新解析一次,解析失败时文书停留在 draft
func (s *documentService) Submit(ctx context.Context, actor *model.PartyModel, id string) (*model.DocumentModel, error) {
	doc, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if doc.Submitter != actor.ID {
		return nil, &workflow.PermissionError{Party: actor.ID, Operation: "submit document " + id}
	}
	if !workflow.CanTransition(workflow.Status(doc.Status), workflow.ActionSubmit) {
		return nil, &workflow.TransitionError{From: workflow.Status(doc.Status), Action: workflow.ActionSubmit}
	}

	// 必填字段检查,失败时不发生任何变更
	tpl, err := s.templates.FindByID(doc.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	fields, err := tpl.FieldSchemas()
	if err != nil {
		return nil, fmt.Errorf("failed to decode template fields: %w", err)
	}
	values, err := doc.FieldValues()
	if err != nil {
		return nil, fmt.Errorf("failed to decode field values: %w", err)
	}
	if err := workflow.ValidateValues(fields, values, true); err != nil {
		return nil, err
	}

	// 提交时按流程快照重新解析审批人,组织在位情况可能自创建后发生变化
	steps, err := doc.FlowSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to decode flow snapshot: %w", err)
	}
	if len(steps) == 0 {
		return nil, &workflow.ValidationError{Field: "flow", Reason: "document carries no approval steps"}
	}
	owner, err := s.resolver.Resolve(routing.Role(steps[0].Role), &directory.OrgContext{
		Unit: actor.Unit,
		Team: actor.Team,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows, err := s.documents.TransitionStatus(nil, id,
		[]string{string(workflow.StatusDraft)},
		map[string]interface{}{
			"status":         string(workflow.StatusSubmitted),
			"decision_owner": owner.ID,
			"submitted_at":   now,
			"updated_at":     now,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to submit document: %w", err)
	}
	if rows == 0 {
		return nil, &workflow.ConflictError{DocumentID: id, Action: workflow.ActionSubmit}
	}

	s.audit(ctx, actor.ID, "submit", id, "{}")

	doc, err = s.load(id)
	if err != nil {
		return nil, err
	}
	s.publish(doc, actor.ID, string(workflow.ActionSubmit))
	return doc, nil
}

// Decide 审批决定 (approve/reject/return)
// 归属检查之后先分类状态再查权限,最后在一个事务里完成条件状态转换
// 和历史追加:两个并发审批只有一个能改掉状态,另一个无论在事务前
// 还是事务里的条件更新上失败,拿到的都是冲突错误且不会写历史
func (s *documentService) Decide(ctx context.Context, actor *model.PartyModel, id string, req *DecideRequest) (*model.DocumentModel, error) {
	action, ok := workflow.ParseAction(req.Action)
	if !ok {
		return nil, &workflow.ValidationError{Field: "action", Reason: "unknown decision action " + req.Action}
	}

	doc, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if doc.DecisionOwner != actor.ID {
		return nil, &workflow.PermissionError{Party: actor.ID, Operation: "decide on document " + id}
	}

	// 状态分类先于权限门:已被另一次决定落定的文书再次审批是冲突,
	// 不是权限问题。draft/cancelled 上的审批则是状态机违规
	status := workflow.Status(doc.Status)
	if !status.IsDecidable() {
		if status == workflow.StatusApproved || status == workflow.StatusRejected {
			return nil, &workflow.ConflictError{DocumentID: id, Action: action}
		}
		return nil, &workflow.TransitionError{From: status, Action: action}
	}
	if !s.gate.CanDecide(actor, doc) {
		return nil, &workflow.PermissionError{Party: actor.ID, Operation: "decide on document " + id}
	}

	target, ok := workflow.Next(status, action)
	if !ok {
		return nil, &workflow.TransitionError{From: status, Action: action}
	}

	steps, err := doc.FlowSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to decode flow snapshot: %w", err)
	}
	stepOrder := 1
	if len(steps) > 0 {
		stepOrder = steps[0].Order
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := s.documents.TransitionStatus(tx, id,
			workflow.DecidableStatuses(),
			map[string]interface{}{
				"status":     string(target),
				"updated_at": now,
			})
		if err != nil {
			return fmt.Errorf("failed to transition status: %w", err)
		}
		if rows == 0 {
			return &workflow.ConflictError{DocumentID: id, Action: action}
		}

		entry := &model.HistoryEntryModel{
			ID:         uuid.NewString(),
			DocumentID: id,
			Actor:      actor.ID,
			Action:     string(action),
			Comment:    req.Comment,
			StepOrder:  stepOrder,
			CreatedAt:  now,
		}
		if err := s.history.Append(tx, entry); err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}
		return nil
	})
	if err != nil {
		var conflict *workflow.ConflictError
		if errors.As(err, &conflict) {
			metrics.RecordDecisionConflict()
		}
		return nil, err
	}

	metrics.RecordDecision(string(action))
	s.audit(ctx, actor.ID, string(action), id, fmt.Sprintf(`{"comment":%q}`, req.Comment))

	doc, err = s.load(id)
	if err != nil {
		return nil, err
	}
	s.publish(doc, actor.ID, string(action))
	return doc, nil
}

// Cancel 取消文书,仅提交人可取消 draft/submitted 状态的文书
func (s *documentService) Cancel(ctx context.Context, actor *model.PartyModel, id string) (*model.DocumentModel, error) {
	doc, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if doc.Submitter != actor.ID {
		return nil, &workflow.PermissionError{Party: actor.ID, Operation: "cancel document " + id}
	}
	if !workflow.CanTransition(workflow.Status(doc.Status), workflow.ActionCancel) {
		return nil, &workflow.TransitionError{From: workflow.Status(doc.Status), Action: workflow.ActionCancel}
	}

	rows, err := s.documents.TransitionStatus(nil, id,
		[]string{string(workflow.StatusDraft), string(workflow.StatusSubmitted)},
		map[string]interface{}{
			"status": string(workflow.StatusCancelled),
		})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel document: %w", err)
	}
	if rows == 0 {
		return nil, &workflow.ConflictError{DocumentID: id, Action: workflow.ActionCancel}
	}

	s.audit(ctx, actor.ID, "cancel", id, "{}")

	doc, err = s.load(id)
	if err != nil {
		return nil, err
	}
	s.publish(doc, actor.ID, string(workflow.ActionCancel))
	return doc, nil
}

// Get 获取文书详情,执行查看权限检查
func (s *documentService) Get(ctx context.Context, actor *model.PartyModel, id string) (*model.DocumentModel, error) {
	doc, err := s.load(id)
	if err != nil {
		return nil, err
	}
	// 审批入口的可见规则比通用查看宽:当前审批人也可以看
	if !s.gate.CanView(actor.ID, doc) && doc.DecisionOwner != actor.ID {
		return nil, &workflow.PermissionError{Party: actor.ID, Operation: "view document " + id}
	}
	return doc, nil
}

// ListMine 列出我提交的文书,可按状态过滤
func (s *documentService) ListMine(actor *model.PartyModel, status string) ([]*model.DocumentModel, error) {
	if status != "" && !workflow.Status(status).Valid() {
		return nil, &workflow.ValidationError{Field: "status", Reason: "unknown status " + status}
	}
	return s.documents.FindBySubmitter(actor.ID, status)
}

// ListPendingFor 列出等待我审批的文书
func (s *documentService) ListPendingFor(actor *model.PartyModel) ([]*model.DocumentModel, error) {
	return s.documents.FindByDecisionOwner(actor.ID, workflow.DecidableStatuses())
}

// History 返回文书的审批历史,按发生顺序升序
func (s *documentService) History(id string) ([]*model.HistoryEntryModel, error) {
	if _, err := s.load(id); err != nil {
		return nil, err
	}
	return s.history.ListByDocument(id)
}

// load 读取文书,未找到时返回 NotFoundError
func (s *documentService) load(id string) (*model.DocumentModel, error) {
	doc, err := s.documents.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &workflow.NotFoundError{Resource: "document", ID: id}
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return doc, nil
}

// audit 记录审计日志,失败只影响审计不影响业务
func (s *documentService) audit(ctx context.Context, partyID, action, documentID, details string) {
	if s.auditLogSvc == nil {
		return
	}
	_ = s.auditLogSvc.RecordAction(ctx, partyID, action, "document", documentID, details)
}

// publish 推送文书事件给提交人和当前审批人
func (s *documentService) publish(doc *model.DocumentModel, actor, action string) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishDocumentEvent(&DocumentEvent{
		DocumentID: doc.ID,
		Status:     doc.Status,
		Actor:      actor,
		Action:     action,
	}, doc.Submitter, doc.DecisionOwner)
}
