package api

import (
	"net/http"

	"github.com/bp4sp4/NMS-System-sub000/internal/auth"
	"github.com/bp4sp4/NMS-System-sub000/internal/service"
	"github.com/bp4sp4/NMS-System-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// TemplateController 模板控制器
type TemplateController struct {
	templateService service.TemplateService
}

// NewTemplateController 创建模板控制器
func NewTemplateController(templateService service.TemplateService) *TemplateController {
	return &TemplateController{templateService: templateService}
}

// List 列出当前人员可见的模板
// 默认按本人部门过滤,传 unit 查询参数可覆盖(过滤只是界面引导)
func (c *TemplateController) List(ctx *gin.Context) {
	unit := ctx.Query("unit")
	if unit == "" {
		if actor := auth.CurrentParty(ctx); actor != nil {
			unit = actor.Unit
		}
	}

	tpls, err := c.templateService.List(unit)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, tpls)
}

// Get 获取模板详情
func (c *TemplateController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := utils.ValidateID(id); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid template ID", err.Error())
		return
	}

	tpl, err := c.templateService.Get(id)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, tpl)
}
