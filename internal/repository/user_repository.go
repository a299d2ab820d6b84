package repository

import (
	"context"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"gorm.io/gorm"
)

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, users ...*model.UserModel) error
	FindAll(ctx context.Context) ([]*model.UserModel, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 批量保存用户
func (r *userRepository) Create(ctx context.Context, users ...*model.UserModel) error {
	if len(users) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(users).Error
}

func (r *userRepository) FindAll(ctx context.Context) ([]*model.UserModel, error) {
	var users []*model.UserModel
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.UserModel{}).Count(&total).Error
	return total, err
}
