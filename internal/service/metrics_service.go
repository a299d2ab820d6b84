package service

import (
	"context"
	"math"

	"github.com/mohamadacma/capflow-demo/internal/metrics"
	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/repository"
	"gorm.io/gorm"
)

// MetricsService 请求汇总统计服务接口
type MetricsService interface {
	Compute(ctx context.Context) (*RequestMetrics, error)
	CountByStatus(ctx context.Context) (map[model.RequestStatus]int64, error)
}

// RequestMetrics 请求汇总统计
type RequestMetrics struct {
	Total            int64   `json:"total"`
	Approved         int64   `json:"approved"`
	AvgApprovalHours float64 `json:"avgApprovalHours"`
}

type metricsService struct {
	requestRepo repository.RequestRepository
}

// NewMetricsService 创建统计服务
func NewMetricsService(db *gorm.DB) MetricsService {
	return &metricsService{requestRepo: repository.NewRequestRepository(db)}
}

// Compute 计算请求总数、批准数和平均批准耗时（小时,保留两位小数）
func (s *metricsService) Compute(ctx context.Context) (*RequestMetrics, error) {
	total, err := s.requestRepo.Count(ctx)
	if err != nil {
		return nil, persistenceError("count requests", err)
	}

	counts, err := s.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	spans, err := s.requestRepo.FindApprovalSpans(ctx)
	if err != nil {
		return nil, persistenceError("load approval spans", err)
	}

	return &RequestMetrics{
		Total:            total,
		Approved:         counts[model.RequestStatusApproved],
		AvgApprovalHours: AverageApprovalHours(spans),
	}, nil
}

// CountByStatus 按状态统计请求数,并刷新状态分布指标
func (s *metricsService) CountByStatus(ctx context.Context) (map[model.RequestStatus]int64, error) {
	counts, err := s.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, persistenceError("count requests by status", err)
	}
	for _, status := range model.AllStatuses {
		metrics.UpdateRequestsByStatus(string(status), float64(counts[status]))
	}
	return counts, nil
}

// AverageApprovalHours 平均批准耗时（小时）,无数据时为 0
func AverageApprovalHours(spans []repository.ApprovalSpan) float64 {
	if len(spans) == 0 {
		return 0
	}
	var sum float64
	for _, span := range spans {
		sum += span.ApprovedAt.Sub(span.CreatedAt).Hours()
	}
	return roundTo(sum/float64(len(spans)), 2)
}

// roundTo 四舍五入到指定小数位
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
