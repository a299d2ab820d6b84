package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/repository"
	"gorm.io/gorm"
)

// ApprovalsCSVHeader 审批动作导出表头
var ApprovalsCSVHeader = []string{"Id", "RequestId", "Actor", "Outcome", "Notes", "At"}

// AuditExportService 审批历史导出服务接口
type AuditExportService interface {
	ExportApprovalsCSV(ctx context.Context) ([]byte, error)
	WriteApprovalsCSV(ctx context.Context, w io.Writer) error
}

type auditExportService struct {
	actionRepo repository.ApprovalActionRepository
}

// NewAuditExportService 创建审批历史导出服务
func NewAuditExportService(db *gorm.DB) AuditExportService {
	return &auditExportService{actionRepo: repository.NewApprovalActionRepository(db)}
}

// ExportApprovalsCSV 导出全部审批动作为 CSV 文本
func (s *auditExportService) ExportApprovalsCSV(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteApprovalsCSV(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteApprovalsCSV 按时间升序写出全部审批动作,首行为表头
func (s *auditExportService) WriteApprovalsCSV(ctx context.Context, w io.Writer) error {
	actions, err := s.actionRepo.FindAll(ctx)
	if err != nil {
		return persistenceError("load approval actions", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ApprovalsCSVHeader); err != nil {
		return err
	}
	for _, action := range actions {
		if err := cw.Write(approvalRow(action)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func approvalRow(a *model.ApprovalActionModel) []string {
	return []string{
		strconv.FormatUint(uint64(a.ID), 10),
		a.RequestID,
		a.Actor,
		string(a.Outcome),
		a.Notes,
		a.At.UTC().Format(time.RFC3339Nano),
	}
}
