package api

import (
	"net/http"

	"github.com/bp4sp4/NMS-System-sub000/internal/service"
	"github.com/bp4sp4/NMS-System-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// FavoriteController 模板收藏控制器
type FavoriteController struct {
	favoriteService service.FavoriteService
}

// NewFavoriteController 创建收藏控制器
func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// Toggle 切换某模板的收藏状态
func (c *FavoriteController) Toggle(ctx *gin.Context) {
	templateID := ctx.Param("id")
	if err := utils.ValidateID(templateID); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid template ID", err.Error())
		return
	}

	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}
	favorited, err := c.favoriteService.Toggle(ctx.Request.Context(), actor.ID, templateID)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, gin.H{"favorited": favorited})
}

// List 列出我的收藏
func (c *FavoriteController) List(ctx *gin.Context) {
	actor, ok := RequireParty(ctx)
	if !ok {
		return
	}

	favs, err := c.favoriteService.List(actor.ID)
	if err != nil {
		HandleServiceError(ctx, err)
		return
	}

	Success(ctx, favs)
}
