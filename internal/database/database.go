package database

import (
	"context"
	"fmt"
	"time"

	"github.com/bp4sp4/NMS-System-sub000/internal/config"
	"github.com/bp4sp4/NMS-System-sub000/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// BuildDSN 构建 PostgreSQL DSN
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// Connect 连接数据库并应用连接池配置
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 100
	}
	maxLifetime := cfg.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 3600
	}
	maxIdleTime := cfg.ConnMaxIdleTime
	if maxIdleTime == 0 {
		maxIdleTime = 600
	}

	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(maxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(maxIdleTime) * time.Second)

	return db, nil
}

// ConnectWithRetry 带重试的数据库连接,指数退避
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	dialector := db.Dialector.Name()

	// SQLite 不认 jsonb 列类型,走手动建表(TEXT 列)
	if dialector == "sqlite" || dialector == "sqlite3" {
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create sqlite tables: %w", err)
		}
	} else {
		if err := db.AutoMigrate(
			&model.TemplateModel{},
			&model.DocumentModel{},
			&model.HistoryEntryModel{},
			&model.FavoriteModel{},
			&model.PartyModel{},
			&model.AuditLogModel{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createSQLiteTables 为 SQLite 手动建表(TEXT 替代 jsonb)
func createSQLiteTables(db *gorm.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS templates (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(64) NOT NULL,
			description TEXT,
			fields TEXT NOT NULL,
			flow TEXT NOT NULL,
			attachments TEXT,
			owner_unit VARCHAR(64),
			active BOOLEAN NOT NULL DEFAULT 1,
			sort_key INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			created_by VARCHAR(64),
			updated_by VARCHAR(64)
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id VARCHAR(64) PRIMARY KEY,
			template_id VARCHAR(64) NOT NULL,
			title VARCHAR(255) NOT NULL,
			submitter VARCHAR(64) NOT NULL,
			submitter_unit VARCHAR(64),
			"values" TEXT NOT NULL,
			status VARCHAR(32) NOT NULL,
			priority VARCHAR(16) NOT NULL DEFAULT 'normal',
			flow TEXT NOT NULL,
			decision_owner VARCHAR(64),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			submitted_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS history_entries (
			id VARCHAR(64) PRIMARY KEY,
			document_id VARCHAR(64) NOT NULL,
			actor VARCHAR(64) NOT NULL,
			action VARCHAR(32) NOT NULL,
			comment TEXT,
			step_order INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			party_id VARCHAR(64) NOT NULL,
			template_id VARCHAR(64) NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (party_id, template_id)
		)`,
		`CREATE TABLE IF NOT EXISTS parties (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(64) NOT NULL,
			unit VARCHAR(64) NOT NULL,
			team VARCHAR(64),
			title VARCHAR(64),
			email VARCHAR(255),
			password_hash VARCHAR(255),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id VARCHAR(64) PRIMARY KEY,
			party_id VARCHAR(64) NOT NULL,
			action VARCHAR(64) NOT NULL,
			resource_type VARCHAR(32) NOT NULL,
			resource_id VARCHAR(64) NOT NULL,
			request_id VARCHAR(64),
			ip VARCHAR(45),
			details TEXT,
			created_at DATETIME NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateIndexes 创建数据库索引
func CreateIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_templates_category ON templates(category)",
		"CREATE INDEX IF NOT EXISTS idx_templates_active ON templates(active)",
		"CREATE INDEX IF NOT EXISTS idx_documents_submitter ON documents(submitter, status)",
		"CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents(decision_owner, status)",
		"CREATE INDEX IF NOT EXISTS idx_documents_template_id ON documents(template_id)",
		"CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents(updated_at)",
		"CREATE INDEX IF NOT EXISTS idx_history_document_id ON history_entries(document_id)",
		"CREATE INDEX IF NOT EXISTS idx_history_created_at ON history_entries(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_parties_name_unit ON parties(name, unit)",
		"CREATE INDEX IF NOT EXISTS idx_audit_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_party_id ON audit_logs(party_id)",
	}

	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// CheckHealth 检查数据库连接健康状态
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
