package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 文书创建数
	documentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "documents_created_total",
			Help: "Total number of approval documents created",
		},
	)

	// 审批决定数
	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decisions_total",
			Help: "Total number of approval decisions",
		},
		[]string{"action"}, // approve, reject, return
	)

	// 审批冲突数(输掉条件状态更新竞争的请求)
	decisionConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "decision_conflicts_total",
			Help: "Total number of decisions that lost the status transition race",
		},
	)

	// 文书状态分布
	documentsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "documents_by_status",
			Help: "Number of documents by status",
		},
		[]string{"status"},
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	registerOnce sync.Once
)

// Register 注册所有指标
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			apiRequestsTotal,
			apiRequestDuration,
			documentsCreatedTotal,
			decisionsTotal,
			decisionConflictsTotal,
			documentsByStatus,
			databaseConnectionsActive,
			databaseConnectionsIdle,
		)
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求指标
func RecordAPIRequest(method, path string, status int, durationSeconds float64) {
	apiRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordDocumentCreated 记录文书创建
func RecordDocumentCreated() {
	documentsCreatedTotal.Inc()
}

// RecordDecision 记录审批决定
func RecordDecision(action string) {
	decisionsTotal.WithLabelValues(action).Inc()
}

// RecordDecisionConflict 记录审批冲突
func RecordDecisionConflict() {
	decisionConflictsTotal.Inc()
}

// SetDocumentsByStatus 更新文书状态分布
func SetDocumentsByStatus(status string, count float64) {
	documentsByStatus.WithLabelValues(status).Set(count)
}

// SetDatabaseConnections 更新数据库连接指标
func SetDatabaseConnections(active, idle int) {
	databaseConnectionsActive.Set(float64(active))
	databaseConnectionsIdle.Set(float64(idle))
}

// statusLabel HTTP 状态码转标签
func statusLabel(status int) string {
	switch {
	case status < 200:
		return "1xx"
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
