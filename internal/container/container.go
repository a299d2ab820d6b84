package container

import (
	"fmt"
	"time"

	"github.com/mohamadacma/capflow-demo/internal/config"
	"github.com/mohamadacma/capflow-demo/internal/database"
	"github.com/mohamadacma/capflow-demo/internal/logging"
	"github.com/mohamadacma/capflow-demo/internal/metrics"
	"github.com/mohamadacma/capflow-demo/internal/repository"
	"github.com/mohamadacma/capflow-demo/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 管理数据库连接、服务和后台指标收集器
type Container struct {
	cfg         *config.Config
	logger      *logrus.Logger
	db          *gorm.DB
	requestSvc  service.RequestService
	decisionSvc service.DecisionService
	metricsSvc  service.MetricsService
	exportSvc   service.AuditExportService
	seedSvc     *service.SeedService
	collector   *metrics.Collector
	collecting  bool
}

// NewContainer 创建依赖注入容器
func NewContainer(cfg *config.Config) (*Container, error) {
	logger, err := logging.NewFromConfig(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetDefault(logger)

	// 默认重试 3 次，初始间隔 1 秒，指数退避
	db, err := database.ConnectWithRetry(cfg.Database, logger, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return NewContainerWithDB(cfg, logger, db)
}

// NewContainerWithDB 使用已有数据库连接创建容器,并执行一次迁移
func NewContainerWithDB(cfg *config.Config, logger *logrus.Logger, db *gorm.DB) (*Container, error) {
	logger = logging.OrDefault(logger)

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	opts := []service.Option{service.WithLogger(logger)}
	interval := time.Duration(cfg.Metrics.CollectInterval) * time.Second

	return &Container{
		cfg:         cfg,
		logger:      logger,
		db:          db,
		requestSvc:  service.NewRequestService(db, opts...),
		decisionSvc: service.NewDecisionService(db, opts...),
		metricsSvc:  service.NewMetricsService(db),
		exportSvc:   service.NewAuditExportService(db),
		seedSvc:     service.NewSeedService(db, opts...),
		collector:   metrics.NewCollector(db, repository.NewRequestRepository(db), interval, logger),
	}, nil
}

// Config 获取配置
func (c *Container) Config() *config.Config {
	return c.cfg
}

// Logger 获取日志记录器
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// RequestService 获取请求服务
func (c *Container) RequestService() service.RequestService {
	return c.requestSvc
}

// DecisionService 获取审批决定服务
func (c *Container) DecisionService() service.DecisionService {
	return c.decisionSvc
}

// MetricsService 获取统计服务
func (c *Container) MetricsService() service.MetricsService {
	return c.metricsSvc
}

// AuditExportService 获取导出服务
func (c *Container) AuditExportService() service.AuditExportService {
	return c.exportSvc
}

// SeedService 获取演示数据服务
func (c *Container) SeedService() *service.SeedService {
	return c.seedSvc
}

// StartCollector 启动后台指标收集
func (c *Container) StartCollector() {
	if c.collecting {
		return
	}
	c.collector.Start()
	c.collecting = true
}

// Close 关闭容器,清理资源
func (c *Container) Close() error {
	if c.collecting {
		c.collector.Stop()
		c.collecting = false
	}
	return database.Close(c.db)
}
