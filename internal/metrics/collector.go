package metrics

import (
	"context"
	"time"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatusCounter 按状态统计请求数
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[model.RequestStatus]int64, error)
}

// Collector 指标收集器,定期刷新数据库连接与请求状态分布
type Collector struct {
	db       *gorm.DB
	counter  StatusCounter
	interval time.Duration
	logger   logrus.FieldLogger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCollector 创建指标收集器
func NewCollector(db *gorm.DB, counter StatusCounter, interval time.Duration, logger logrus.FieldLogger) *Collector {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Collector{
		db:       db,
		counter:  counter,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start 启动指标收集器
func (c *Collector) Start() {
	go c.collect()
}

// Stop 停止指标收集器
func (c *Collector) Stop() {
	c.cancel()
	<-c.done
}

// collect 定期收集指标
func (c *Collector) collect() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.done)

	c.CollectOnce(c.ctx)
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.CollectOnce(c.ctx)
		}
	}
}

// CollectOnce 立即收集一次指标
func (c *Collector) CollectOnce(ctx context.Context) {
	if c.db != nil {
		if err := UpdateDatabaseConnections(c.db); err != nil {
			c.logger.WithError(err).Debug("failed to collect database connection metrics")
		}
	}
	if c.counter == nil {
		return
	}
	counts, err := c.counter.CountByStatus(ctx)
	if err != nil {
		c.logger.WithError(err).Debug("failed to collect request status metrics")
		return
	}
	for _, status := range model.AllStatuses {
		UpdateRequestsByStatus(string(status), float64(counts[status]))
	}
}
