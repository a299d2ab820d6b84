package repository

import (
	"context"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"gorm.io/gorm"
)

// CAPARepository CAPA 仓储接口
type CAPARepository interface {
	Create(ctx context.Context, capa *model.CAPAModel) error
	FindAll(ctx context.Context) ([]*model.CAPAModel, error)
	FindByRequestID(ctx context.Context, requestID string) ([]*model.CAPAModel, error)
}

type capaRepository struct {
	db *gorm.DB
}

// NewCAPARepository 创建 CAPA 仓储
func NewCAPARepository(db *gorm.DB) CAPARepository {
	return &capaRepository{db: db}
}

func (r *capaRepository) Create(ctx context.Context, capa *model.CAPAModel) error {
	if err := capa.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(capa).Error
}

func (r *capaRepository) FindAll(ctx context.Context) ([]*model.CAPAModel, error) {
	var capas []*model.CAPAModel
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&capas).Error
	return capas, err
}

func (r *capaRepository) FindByRequestID(ctx context.Context, requestID string) ([]*model.CAPAModel, error) {
	var capas []*model.CAPAModel
	err := r.db.WithContext(ctx).Where("request_id = ?", requestID).Order("created_at ASC").Find(&capas).Error
	return capas, err
}
