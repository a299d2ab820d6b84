package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultRequestType 未指定类型时的默认分类
const DefaultRequestType = "SOP Change"

// RequestModel 变更请求数据模型
type RequestModel struct {
	ID           string                `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title        string                `gorm:"type:varchar(255);not null" json:"title"`
	Type         string                `gorm:"type:varchar(64);not null" json:"type"`
	Description  string                `gorm:"type:text" json:"description"`
	RequestedBy  string                `gorm:"type:varchar(255);not null;index" json:"requestedBy"`
	RequiresCAPA bool                  `gorm:"column:requires_capa;not null;default:false" json:"requiresCapa"`
	Status       RequestStatus         `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    time.Time             `gorm:"not null;index" json:"createdAt"`
	ApprovedAt   *time.Time            `gorm:"index" json:"approvedAt"`
	Actions      []ApprovalActionModel `gorm:"foreignKey:RequestID;references:ID;constraint:OnDelete:CASCADE" json:"actions"`
}

// TableName 指定表名
func (RequestModel) TableName() string {
	return "requests"
}

// Validate 验证请求模型
func (rm *RequestModel) Validate() error {
	if rm.ID == "" {
		return errors.New("request ID is required")
	}
	if strings.TrimSpace(rm.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(rm.RequestedBy) == "" {
		return errors.New("requestedBy is required")
	}
	if !rm.Status.Valid() {
		return fmt.Errorf("unknown status %q", rm.Status)
	}
	return rm.CheckInvariants()
}

// CheckInvariants 检查 ApprovedAt 与状态的一致性
func (rm *RequestModel) CheckInvariants() error {
	approved := rm.Status == RequestStatusApproved
	if approved && rm.ApprovedAt == nil {
		return errors.New("approved request must have approvedAt")
	}
	if !approved && rm.ApprovedAt != nil {
		return fmt.Errorf("request in status %s must not have approvedAt", rm.Status)
	}
	return nil
}
