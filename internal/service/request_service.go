package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mohamadacma/capflow-demo/internal/metrics"
	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RequestService 变更请求受理与查询服务接口
type RequestService interface {
	Create(ctx context.Context, input *CreateRequestInput) (*model.RequestModel, error)
	List(ctx context.Context) ([]*model.RequestModel, error)
	Get(ctx context.Context, id string) (*model.RequestModel, error)
	ListPending(ctx context.Context) ([]*model.RequestModel, error)
	ListCAPAs(ctx context.Context) ([]*model.CAPAModel, error)
	ListRequestCAPAs(ctx context.Context, id string) ([]*model.CAPAModel, error)
}

// CreateRequestInput 创建变更请求参数
type CreateRequestInput struct {
	Title        string `json:"title" example:"Update SOP-12"`
	Type         string `json:"type" example:"SOP Change"`
	Description  string `json:"description"`
	RequestedBy  string `json:"requestedBy" example:"alice@lab"`
	RequiresCAPA bool   `json:"requiresCapa"`
}

type requestService struct {
	requestRepo repository.RequestRepository
	capaRepo    repository.CAPARepository
	now         func() time.Time
	logger      *logrus.Logger
}

// NewRequestService 创建变更请求服务
func NewRequestService(db *gorm.DB, opts ...Option) RequestService {
	o := buildOptions(opts)
	return &requestService{
		requestRepo: repository.NewRequestRepository(db),
		capaRepo:    repository.NewCAPARepository(db),
		now:         o.now,
		logger:      o.logger,
	}
}

// Create 受理新请求,状态置为 Pending
func (s *requestService) Create(ctx context.Context, input *CreateRequestInput) (*model.RequestModel, error) {
	if input == nil {
		return nil, &ValidationError{Message: "request body is required"}
	}

	title := strings.TrimSpace(input.Title)
	requestedBy := strings.TrimSpace(input.RequestedBy)
	if title == "" || requestedBy == "" {
		return nil, &ValidationError{Field: "title,requestedBy", Message: "Title and RequestedBy are required."}
	}

	reqType := strings.TrimSpace(input.Type)
	if reqType == "" {
		reqType = model.DefaultRequestType
	}

	req := &model.RequestModel{
		ID:           uuid.New().String(),
		Title:        title,
		Type:         reqType,
		Description:  input.Description,
		RequestedBy:  requestedBy,
		RequiresCAPA: input.RequiresCAPA,
		Status:       model.RequestStatusPending,
		CreatedAt:    s.now(),
		Actions:      []model.ApprovalActionModel{},
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, persistenceError("create request", err)
	}

	metrics.RecordRequestCreated()
	s.logger.WithFields(logrus.Fields{
		"request_id":   req.ID,
		"requested_by": req.RequestedBy,
		"type":         req.Type,
	}).Info("change request created")

	return req, nil
}

// List 列出所有请求（含审批历史）
func (s *requestService) List(ctx context.Context) ([]*model.RequestModel, error) {
	reqs, err := s.requestRepo.FindAll(ctx)
	if err != nil {
		return nil, persistenceError("list requests", err)
	}
	return reqs, nil
}

// Get 获取单个请求（含审批历史）
func (s *requestService) Get(ctx context.Context, id string) (*model.RequestModel, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError("request", id, "get request", err)
	}
	return req, nil
}

// ListPending 列出待审批请求
func (s *requestService) ListPending(ctx context.Context) ([]*model.RequestModel, error) {
	reqs, err := s.requestRepo.FindByStatus(ctx, model.RequestStatusPending)
	if err != nil {
		return nil, persistenceError("list pending requests", err)
	}
	return reqs, nil
}

// ListCAPAs 列出所有 CAPA
func (s *requestService) ListCAPAs(ctx context.Context) ([]*model.CAPAModel, error) {
	capas, err := s.capaRepo.FindAll(ctx)
	if err != nil {
		return nil, persistenceError("list capas", err)
	}
	return capas, nil
}

// ListRequestCAPAs 列出某个请求下的 CAPA,请求不存在返回 NotFoundError
func (s *requestService) ListRequestCAPAs(ctx context.Context, id string) ([]*model.CAPAModel, error) {
	if _, err := s.requestRepo.FindByID(ctx, id); err != nil {
		return nil, lookupError("request", id, "get request", err)
	}
	capas, err := s.capaRepo.FindByRequestID(ctx, id)
	if err != nil {
		return nil, persistenceError("list request capas", err)
	}
	return capas, nil
}
