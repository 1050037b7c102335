package metrics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// StatusCounter 提供文书状态分布的数据源
type StatusCounter interface {
	CountByStatus() (map[string]int64, error)
}

// Collector 周期性采集数据库连接池和文书状态分布指标
type Collector struct {
	db       *gorm.DB
	counter  StatusCounter
	interval time.Duration
}

// NewCollector 创建指标采集器
func NewCollector(db *gorm.DB, counter StatusCounter, interval time.Duration) *Collector {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Collector{db: db, counter: counter, interval: interval}
}

// Run 启动采集循环,ctx 取消后返回
func (c *Collector) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.collect()
		}
	}
}

// collect 执行一次采集
func (c *Collector) collect() {
	if c.db != nil {
		if sqlDB, err := c.db.DB(); err == nil {
			stats := sqlDB.Stats()
			SetDatabaseConnections(stats.InUse, stats.Idle)
		}
	}

	if c.counter != nil {
		counts, err := c.counter.CountByStatus()
		if err != nil {
			return
		}
		for status, count := range counts {
			SetDocumentsByStatus(status, float64(count))
		}
	}
}
