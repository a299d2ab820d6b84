package repository

import (
	"context"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"gorm.io/gorm"
)

// ApprovalActionRepository 审批动作仓储接口
// 审批动作只追加,不提供更新和删除
type ApprovalActionRepository interface {
	Create(ctx context.Context, action *model.ApprovalActionModel) error
	FindByRequestID(ctx context.Context, requestID string) ([]*model.ApprovalActionModel, error)
	FindAll(ctx context.Context) ([]*model.ApprovalActionModel, error)
}

// approvalActionRepository 审批动作仓储实现
type approvalActionRepository struct {
	db *gorm.DB
}

// NewApprovalActionRepository 创建审批动作仓储
func NewApprovalActionRepository(db *gorm.DB) ApprovalActionRepository {
	return &approvalActionRepository{db: db}
}

// Create 追加审批动作
func (r *approvalActionRepository) Create(ctx context.Context, action *model.ApprovalActionModel) error {
	return r.db.WithContext(ctx).Create(action).Error
}

// FindByRequestID 根据请求 ID 查找审批动作
func (r *approvalActionRepository) FindByRequestID(ctx context.Context, requestID string) ([]*model.ApprovalActionModel, error) {
	var actions []*model.ApprovalActionModel
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).Order("at ASC, id ASC").Find(&actions).Error
	return actions, err
}

// FindAll 按时间升序查找所有审批动作
func (r *approvalActionRepository) FindAll(ctx context.Context) ([]*model.ApprovalActionModel, error) {
	var actions []*model.ApprovalActionModel
	err := r.db.WithContext(ctx).Order("at ASC, id ASC").Find(&actions).Error
	return actions, err
}
