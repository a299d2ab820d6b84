package repository

import (
	"context"
	"time"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"gorm.io/gorm"
)

// RequestRepository 变更请求仓储接口
type RequestRepository interface {
	Create(ctx context.Context, req *model.RequestModel) error
	FindByID(ctx context.Context, id string) (*model.RequestModel, error)
	FindAll(ctx context.Context) ([]*model.RequestModel, error)
	FindByStatus(ctx context.Context, status model.RequestStatus) ([]*model.RequestModel, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[model.RequestStatus]int64, error)
	FindApprovalSpans(ctx context.Context) ([]ApprovalSpan, error)
	TransitionStatus(ctx context.Context, id string, from []model.RequestStatus, to model.RequestStatus, approvedAt *time.Time) (int64, error)
}

// ApprovalSpan 已批准请求的创建时间与批准时间
type ApprovalSpan struct {
	CreatedAt  time.Time
	ApprovedAt time.Time
}

// requestRepository 变更请求仓储实现
type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository 创建变更请求仓储
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// preloadActions 按时间顺序预加载审批动作
func preloadActions(db *gorm.DB) *gorm.DB {
	return db.Preload("Actions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("at ASC, id ASC")
	})
}

// Create 保存新请求
func (r *requestRepository) Create(ctx context.Context, req *model.RequestModel) error {
	return r.db.WithContext(ctx).Omit("Actions").Create(req).Error
}

// FindByID 根据 ID 查找请求（含审批历史）
func (r *requestRepository) FindByID(ctx context.Context, id string) (*model.RequestModel, error) {
	var req model.RequestModel
	if err := preloadActions(r.db.WithContext(ctx)).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	ensureActions(&req)
	return &req, nil
}

// FindAll 查找所有请求（含审批历史）
func (r *requestRepository) FindAll(ctx context.Context) ([]*model.RequestModel, error) {
	var reqs []*model.RequestModel
	if err := preloadActions(r.db.WithContext(ctx)).Order("created_at ASC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	ensureActions(reqs...)
	return reqs, nil
}

// FindByStatus 根据状态查找请求（含审批历史）
func (r *requestRepository) FindByStatus(ctx context.Context, status model.RequestStatus) ([]*model.RequestModel, error) {
	var reqs []*model.RequestModel
	err := preloadActions(r.db.WithContext(ctx)).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	ensureActions(reqs...)
	return reqs, nil
}

// ensureActions 没有审批历史时输出空数组而不是 null
func ensureActions(reqs ...*model.RequestModel) {
	for _, req := range reqs {
		if req.Actions == nil {
			req.Actions = []model.ApprovalActionModel{}
		}
	}
}

// Count 统计请求总数
func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.RequestModel{}).Count(&total).Error
	return total, err
}

// CountByStatus 按状态统计请求数
func (r *requestRepository) CountByStatus(ctx context.Context) (map[model.RequestStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.RequestModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.RequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[model.RequestStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// FindApprovalSpans 查找所有 approved_at 非空的请求时间跨度
func (r *requestRepository) FindApprovalSpans(ctx context.Context) ([]ApprovalSpan, error) {
	var rows []struct {
		CreatedAt  time.Time
		ApprovedAt *time.Time
	}
	err := r.db.WithContext(ctx).Model(&model.RequestModel{}).
		Select("created_at, approved_at").
		Where("approved_at IS NOT NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	spans := make([]ApprovalSpan, 0, len(rows))
	for _, row := range rows {
		if row.ApprovedAt == nil {
			continue
		}
		spans = append(spans, ApprovalSpan{CreatedAt: row.CreatedAt, ApprovedAt: *row.ApprovedAt})
	}
	return spans, nil
}

// TransitionStatus 仅当当前状态属于 from 时更新状态（比较并交换）
// 返回受影响行数,0 表示状态已被其他决定修改
func (r *requestRepository) TransitionStatus(
	ctx context.Context,
	id string,
	from []model.RequestStatus,
	to model.RequestStatus,
	approvedAt *time.Time,
) (int64, error) {
	fromValues := make([]string, 0, len(from))
	for _, s := range from {
		fromValues = append(fromValues, string(s))
	}

	result := r.db.WithContext(ctx).Model(&model.RequestModel{}).
		Where("id = ? AND status IN ?", id, fromValues).
		Updates(map[string]interface{}{
			"status":      string(to),
			"approved_at": approvedAt,
		})
	return result.RowsAffected, result.Error
}
