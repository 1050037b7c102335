package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bp4sp4/NMS-System-sub000/internal/auth"
	"github.com/bp4sp4/NMS-System-sub000/internal/config"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
	"github.com/bp4sp4/NMS-System-sub000/internal/websocket"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	Document *DocumentController
	Template *TemplateController
	Favorite *FavoriteController
}

// SetupRoutes 配置路由
func SetupRoutes(
	cfg *config.Config,
	db *gorm.DB,
	hub *websocket.Hub,
	validator *auth.TokenValidator,
	parties repository.PartyRepository,
	controllers *Controllers,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// 中间件
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(RateLimitMiddleware(100, 200))
	if cfg.Tracing.Enabled {
		router.Use(TracingMiddleware())
	}
	router.Use(ErrorHandlerMiddleware())

	// 健康检查
	healthController := NewHealthController(db)
	router.GET("/health", healthController.Check)

	// Prometheus 指标端点
	router.GET("/metrics", MetricsHandler)

	// WebSocket 路由
	if hub != nil && validator != nil {
		router.GET("/ws", websocket.Handler(hub, validator))
	}

	// API v1 路由组,全部需要认证
	v1 := router.Group("/api/v1")
	if validator != nil {
		v1.Use(auth.Middleware(validator, parties))
	}
	{
		// 模板路由
		templates := v1.Group("/templates")
		{
			templates.GET("", controllers.Template.List)
			templates.GET("/:id", controllers.Template.Get)
			templates.POST("/:id/favorite", controllers.Favorite.Toggle)
		}

		// 收藏路由
		v1.GET("/favorites", controllers.Favorite.List)

		// 文书路由
		documents := v1.Group("/documents")
		{
			documents.POST("", controllers.Document.Create)
			documents.GET("", controllers.Document.ListMine)
			documents.GET("/pending", controllers.Document.ListPending)
			documents.GET("/:id", controllers.Document.Get)
			documents.PUT("/:id", controllers.Document.EditDraft)
			documents.POST("/:id/submit", controllers.Document.Submit)
			documents.POST("/:id/decide", controllers.Document.Decide)
			documents.POST("/:id/cancel", controllers.Document.Cancel)
			documents.GET("/:id/history", controllers.Document.History)
		}
	}

	// 未匹配路由统一返回 JSON
	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "not found", "route not registered")
	})

	return router
}
