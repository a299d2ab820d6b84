package service

import (
	"context"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DemoUsers 演示用户
var DemoUsers = []model.UserModel{
	{Name: "Alice", Email: "alice@lab", Role: model.RoleTech},
	{Name: "Bob", Email: "bob@qa", Role: model.RoleQA},
}

// SeedService 演示数据初始化服务
type SeedService struct {
	userRepo repository.UserRepository
	logger   *logrus.Logger
}

// NewSeedService 创建演示数据初始化服务
func NewSeedService(db *gorm.DB, opts ...Option) *SeedService {
	o := buildOptions(opts)
	return &SeedService{
		userRepo: repository.NewUserRepository(db),
		logger:   o.logger,
	}
}

// SeedDemoUsers 用户表为空时写入演示用户,返回写入数量
func (s *SeedService) SeedDemoUsers(ctx context.Context) (int, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return 0, persistenceError("count users", err)
	}
	if count > 0 {
		s.logger.WithField("users", count).Info("users already present, skipping seed")
		return 0, nil
	}

	users := make([]*model.UserModel, 0, len(DemoUsers))
	for i := range DemoUsers {
		u := DemoUsers[i]
		if err := u.Validate(); err != nil {
			return 0, &ValidationError{Field: "user", Message: err.Error()}
		}
		users = append(users, &u)
	}
	if err := s.userRepo.Create(ctx, users...); err != nil {
		return 0, persistenceError("seed users", err)
	}

	s.logger.WithField("users", len(users)).Info("demo users seeded")
	return len(users), nil
}

// ListUsers 列出所有用户
func (s *SeedService) ListUsers(ctx context.Context) ([]*model.UserModel, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, persistenceError("list users", err)
	}
	return users, nil
}
