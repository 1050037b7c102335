package api

import (
	"net/http"

	"github.com/bp4sp4/NMS-System-sub000/internal/service"
	"github.com/bp4sp4/NMS-System-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// DocumentController 文书控制器
type DocumentController struct {
	documentService service.DocumentService
}

// NewDocumentController 创建文书控制器
func NewDocumentController(documentService service.DocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

// validateDocumentID 验证文书 ID,无效时写错误响应
func (c *DocumentController) validateDocumentID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid document ID", err.Error())
		return false
	}
	return true
}

// Create 创建文书
func (c *DocumentController) Create(ctx *gin.Context) {
	var req service.CreateDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}
	doc, err := c.documentService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, doc)
}

// Get 获取文书详情
func (c *DocumentController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDocumentID(ctx, id) {
		return
	}

	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}
	doc, err := c.documentService.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, doc)
}

// EditDraft 编辑草稿
func (c *DocumentController) EditDraft(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDocumentID(ctx, id) {
		return
	}

	var req service.EditDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}
	doc, err := c.documentService.EditDraft(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, doc)
}

// Submit 提交文书
func (c *DocumentController) Submit(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDocumentID(ctx, id) {
		return
	}

	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}
	doc, err := c.documentService.Submit(ctx.Request.Context(), actor, id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, doc)
}

// Decide 审批决定 (approve/reject/return)
func (c *DocumentController) Decide(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDocumentID(ctx, id) {
		return
	}

	var req service.DecideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}
	doc, err := c.documentService.Decide(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, doc)
}

// Cancel 取消文书
func (c *DocumentController) Cancel(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDocumentID(ctx, id) {
		return
	}

	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}
	doc, err := c.documentService.Cancel(ctx.Request.Context(), actor, id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, doc)
}

// ListMine 列出我提交的文书
func (c *DocumentController) ListMine(ctx *gin.Context) {
	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}
	status := ctx.Query("status")

	docs, err := c.documentService.ListMine(actor, status)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, docs)
}

// ListPending 列出等待我审批的文书
func (c *DocumentController) ListPending(ctx *gin.Context) {
	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}

	docs, err := c.documentService.ListPendingFor(actor)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, docs)
}

// History 返回文书的审批历史
func (c *DocumentController) History(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateDocumentID(ctx, id) {
		return
	}

	entries, err := c.documentService.History(id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, entries)
}
