package model

import (
	"errors"
	"time"
)

// ApprovalActionModel 审批动作数据模型（只追加,不修改）
type ApprovalActionModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID string    `gorm:"type:varchar(64);not null;index" json:"requestId"`
	Actor     string    `gorm:"type:varchar(255);not null;index" json:"actor"`
	Outcome   Outcome   `gorm:"type:varchar(20);not null" json:"outcome"`
	Notes     string    `gorm:"type:text;not null;default:''" json:"notes"`
	At        time.Time `gorm:"not null;index" json:"at"`
}

// TableName 指定表名
func (ApprovalActionModel) TableName() string {
	return "approval_actions"
}

// Validate 验证审批动作模型
func (am *ApprovalActionModel) Validate() error {
	if am.RequestID == "" {
		return errors.New("request ID is required")
	}
	if am.Actor == "" {
		return errors.New("actor is required")
	}
	if am.Outcome != OutcomeApproved && am.Outcome != OutcomeRejected {
		return errors.New("outcome must be Approved or Rejected")
	}
	if am.At.IsZero() {
		return errors.New("action time is required")
	}
	return nil
}
