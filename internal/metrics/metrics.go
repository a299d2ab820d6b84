package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
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

	// 变更请求创建数
	requestsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "requests_created_total",
			Help: "Total number of change-control requests created",
		},
	)

	// 审批决定数
	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decisions_total",
			Help: "Total number of applied decisions",
		},
		[]string{"outcome"},
	)

	// 被拒绝的决定尝试（权限、冲突等）
	decisionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decision_failures_total",
			Help: "Total number of decision attempts that were not applied",
		},
		[]string{"reason"},
	)

	capasCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "capas_created_total",
			Help: "Total number of CAPA records created",
		},
	)

	// 请求状态分布
	requestsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "requests_by_status",
			Help: "Number of requests by lifecycle status",
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

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)
)

var registerOnce sync.Once

func init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			apiRequestsTotal,
			apiRequestDuration,
			requestsCreatedTotal,
			decisionsTotal,
			decisionFailuresTotal,
			capasCreatedTotal,
			requestsByStatus,
			databaseConnectionsActive,
			databaseConnectionsIdle,
			databaseConnectionsMax,
		)
	})
}

// Handler 返回 Prometheus 指标处理器
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest 记录 API 请求
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordRequestCreated 记录请求创建
func RecordRequestCreated() {
	requestsCreatedTotal.Inc()
}

// RecordDecision 记录已生效的审批决定
func RecordDecision(outcome string) {
	decisionsTotal.WithLabelValues(outcome).Inc()
}

// RecordDecisionFailure 记录未生效的审批决定
func RecordDecisionFailure(reason string) {
	decisionFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordCAPACreated 记录 CAPA 创建
func RecordCAPACreated() {
	capasCreatedTotal.Inc()
}

// UpdateRequestsByStatus 更新请求状态分布指标
func UpdateRequestsByStatus(status string, count float64) {
	requestsByStatus.WithLabelValues(status).Set(count)
}

// UpdateDatabaseConnections 更新数据库连接数指标
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))

	return nil
}
