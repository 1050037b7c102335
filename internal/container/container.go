package container

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bp4sp4/NMS-System-sub000/internal/auth"
	"github.com/bp4sp4/NMS-System-sub000/internal/config"
	"github.com/bp4sp4/NMS-System-sub000/internal/database"
	"github.com/bp4sp4/NMS-System-sub000/internal/directory"
	"github.com/bp4sp4/NMS-System-sub000/internal/permission"
	"github.com/bp4sp4/NMS-System-sub000/internal/repository"
	"github.com/bp4sp4/NMS-System-sub000/internal/routing"
	"github.com/bp4sp4/NMS-System-sub000/internal/websocket"
)

// Container 依赖注入容器
// 管理数据库连接、仓储、路由规则表和共享组件
type Container struct {
	cfg       *config.Config
	db        *gorm.DB
	documents repository.DocumentRepository
	templates repository.TemplateRepository
	histories repository.HistoryRepository
	favorites repository.FavoriteRepository
	parties   repository.PartyRepository
	auditLogs repository.AuditLogRepository
	dir       directory.Directory
	resolver  *routing.Resolver
	gate      *permission.Gate
	validator *auth.TokenValidator
	hub       *websocket.Hub
}

// NewContainer 创建依赖注入容器
// 根据配置初始化所有依赖组件
func NewContainer(cfg *config.Config) (*Container, error) {
	// 数据库连接带重试, 指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := database.CreateIndexes(db); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	parties := repository.NewPartyRepository(db)
	dir := directory.NewDirectory(parties)

	// 审批人路由规则表: 配置文件优先, 缺省用内置表
	table := routing.DefaultTable()
	defaultParty := cfg.Routing.DefaultParty
	if cfg.Routing.RulesFile != "" {
		loaded, loadedDefault, err := routing.LoadTable(cfg.Routing.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load routing rules: %w", err)
		}
		table = loaded
		if loadedDefault != "" {
			defaultParty = loadedDefault
		}
	}
	resolver := routing.NewResolver(table, dir, defaultParty)

	gate := permission.NewGate(permission.AuthorityRule{
		Unit:  cfg.Permission.AuthorityUnit,
		Title: cfg.Permission.AuthorityTitle,
	})

	var validator *auth.TokenValidator
	if cfg.Auth.Issuer != "" {
		validator = auth.NewTokenValidator(cfg.Auth.Issuer, cfg.Auth.JWKSURL)
	}

	return &Container{
		cfg:       cfg,
		db:        db,
		documents: repository.NewDocumentRepository(db),
		templates: repository.NewTemplateRepository(db),
		histories: repository.NewHistoryRepository(db),
		favorites: repository.NewFavoriteRepository(db),
		parties:   parties,
		auditLogs: repository.NewAuditLogRepository(db),
		dir:       dir,
		resolver:  resolver,
		gate:      gate,
		validator: validator,
		hub:       websocket.NewHub(),
	}, nil
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Config 获取配置
func (c *Container) Config() *config.Config {
	return c.cfg
}

// Documents 获取文书仓储
func (c *Container) Documents() repository.DocumentRepository {
	return c.documents
}

// Templates 获取模板仓储
func (c *Container) Templates() repository.TemplateRepository {
	return c.templates
}

// Histories 获取审批历史仓储
func (c *Container) Histories() repository.HistoryRepository {
	return c.histories
}

// Favorites 获取收藏仓储
func (c *Container) Favorites() repository.FavoriteRepository {
	return c.favorites
}

// Parties 获取用户仓储
func (c *Container) Parties() repository.PartyRepository {
	return c.parties
}

// AuditLogs 获取审计日志仓储
func (c *Container) AuditLogs() repository.AuditLogRepository {
	return c.auditLogs
}

// Directory 获取组织目录
func (c *Container) Directory() directory.Directory {
	return c.dir
}

// Resolver 获取审批人解析器
func (c *Container) Resolver() *routing.Resolver {
	return c.resolver
}

// Gate 获取权限检查器
func (c *Container) Gate() *permission.Gate {
	return c.gate
}

// Validator 获取 Token 验证器, 未配置 issuer 时为 nil
func (c *Container) Validator() *auth.TokenValidator {
	return c.validator
}

// Hub 获取 WebSocket Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// Close 关闭容器, 释放数据库连接
func (c *Container) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
