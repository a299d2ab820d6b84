package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mohamadacma/capflow-demo/internal/metrics"
	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/repository"
	"github.com/mohamadacma/capflow-demo/internal/tracing"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

// DecisionService 审批决定服务接口
type DecisionService interface {
	Decide(ctx context.Context, input *DecisionInput) (*model.RequestModel, error)
}

// DecisionInput 审批决定参数
type DecisionInput struct {
	RequestID  string
	ActorRole  string
	Actor      string
	Outcome    string
	Notes      string
	CreateCAPA bool
	CAPA       *CAPADetails
}

// CAPADetails 随批准一起创建的 CAPA 内容（可选）
type CAPADetails struct {
	RootCause        string     `json:"rootCause"`
	CorrectiveAction string     `json:"correctiveAction"`
	PreventiveAction string     `json:"preventiveAction"`
	DueDate          *time.Time `json:"dueDate"`
}

type decisionService struct {
	db     *gorm.DB
	locks  *KeyedMutex
	now    func() time.Time
	logger *logrus.Logger
}

// NewDecisionService 创建审批决定服务
func NewDecisionService(db *gorm.DB, opts ...Option) DecisionService {
	o := buildOptions(opts)
	return &decisionService{
		db:     db,
		locks:  o.locks,
		now:    o.now,
		logger: o.logger,
	}
}

// Decide 对请求做出批准或拒绝决定
//
// 审批动作、状态变更和可选的 CAPA 在同一事务中写入,任一失败则全部回滚。
// 同一请求的决定按请求 ID 串行执行;已处于终态的请求返回 ConflictError。
func (s *decisionService) Decide(ctx context.Context, input *DecisionInput) (*model.RequestModel, error) {
	ctx, span := tracing.Tracer("service").Start(ctx, "DecisionService.Decide")
	defer span.End()

	updated, err := s.decide(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("request.id", updated.ID),
		attribute.String("request.status", string(updated.Status)),
	)
	return updated, nil
}

func (s *decisionService) decide(ctx context.Context, input *DecisionInput) (*model.RequestModel, error) {
	if input == nil {
		return nil, &ValidationError{Message: "decision is required"}
	}

	// 1. 权限检查,在读取任何状态之前
	role := model.ParseRole(input.ActorRole)
	if !role.IsReviewer() {
		metrics.RecordDecisionFailure("forbidden")
		return nil, &AuthorizationError{Role: input.ActorRole}
	}

	// 2. 参数校验
	actor := strings.TrimSpace(input.Actor)
	if actor == "" {
		return nil, &ValidationError{Field: "actor", Message: "actor is required"}
	}
	outcome, err := model.ParseOutcome(input.Outcome)
	if err != nil {
		return nil, &ValidationError{Field: "outcome", Message: "outcome must be Approved or Rejected"}
	}

	// 3. 同一请求串行化
	unlock := s.locks.Lock(input.RequestID)
	defer unlock()

	now := s.now()
	var (
		capa    *model.CAPAModel
		updated *model.RequestModel
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requestRepo := repository.NewRequestRepository(tx)
		actionRepo := repository.NewApprovalActionRepository(tx)

		current, err := requestRepo.FindByID(ctx, input.RequestID)
		if err != nil {
			return lookupError("request", input.RequestID, "load request", err)
		}
		if current.Status.IsTerminal() {
			return &ConflictError{ID: current.ID, Status: current.Status}
		}

		action := &model.ApprovalActionModel{
			RequestID: current.ID,
			Actor:     actor,
			Outcome:   outcome,
			Notes:     input.Notes,
			At:        now,
		}
		if err := actionRepo.Create(ctx, action); err != nil {
			return persistenceError("append approval action", err)
		}

		var approvedAt *time.Time
		if outcome == model.OutcomeApproved {
			approvedAt = &now
		}
		affected, err := requestRepo.TransitionStatus(ctx, current.ID, model.OpenStatuses, outcome.Status(), approvedAt)
		if err != nil {
			return persistenceError("update request status", err)
		}
		if affected == 0 {
			return &ConflictError{ID: current.ID, Status: current.Status}
		}

		if outcome == model.OutcomeApproved && input.CreateCAPA {
			capa = newCAPA(current.ID, actor, now, input.CAPA)
			if err := repository.NewCAPARepository(tx).Create(ctx, capa); err != nil {
				return persistenceError("create capa", err)
			}
		}

		// 结果在事务内组装,提交后不再回读
		actions, err := actionRepo.FindByRequestID(ctx, current.ID)
		if err != nil {
			return persistenceError("load approval actions", err)
		}
		current.Status = outcome.Status()
		current.ApprovedAt = approvedAt
		current.Actions = make([]model.ApprovalActionModel, 0, len(actions))
		for _, a := range actions {
			current.Actions = append(current.Actions, *a)
		}
		updated = current
		return nil
	})
	if err != nil {
		s.recordFailure(input, err)
		return nil, err
	}

	metrics.RecordDecision(string(outcome))
	if capa != nil {
		metrics.RecordCAPACreated()
	}

	entry := s.logger.WithFields(logrus.Fields{
		"request_id": input.RequestID,
		"actor":      actor,
		"outcome":    outcome,
	})
	if capa != nil {
		entry = entry.WithField("capa_id", capa.ID)
	}
	entry.Info("decision applied")

	return updated, nil
}

// newCAPA 构建批准时创建的 CAPA,负责人为审批人
func newCAPA(requestID, owner string, now time.Time, details *CAPADetails) *model.CAPAModel {
	capa := &model.CAPAModel{
		ID:        uuid.New().String(),
		RequestID: requestID,
		Owner:     owner,
		Status:    model.CAPAStatusOpen,
		CreatedAt: now,
	}
	if details != nil {
		capa.RootCause = details.RootCause
		capa.CorrectiveAction = details.CorrectiveAction
		capa.PreventiveAction = details.PreventiveAction
		capa.DueDate = details.DueDate
	}
	return capa
}

func (s *decisionService) recordFailure(input *DecisionInput, err error) {
	reason := "persistence"
	var (
		notFoundErr *NotFoundError
		conflictErr *ConflictError
	)
	switch {
	case errors.As(err, &notFoundErr):
		reason = "not_found"
	case errors.As(err, &conflictErr):
		reason = "conflict"
	}
	metrics.RecordDecisionFailure(reason)

	entry := s.logger.WithError(err).WithField("request_id", input.RequestID)
	if reason == "persistence" {
		entry.Error("decision failed")
	} else {
		entry.Warn("decision rejected")
	}
}
