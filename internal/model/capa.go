package model

import (
	"errors"
	"fmt"
	"time"
)

// CAPAModel 纠正预防措施数据模型
type CAPAModel struct {
	ID               string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	RequestID        string     `gorm:"type:varchar(64);not null;index" json:"requestId"`
	RootCause        string     `gorm:"type:text" json:"rootCause"`
	CorrectiveAction string     `gorm:"type:text" json:"correctiveAction"`
	PreventiveAction string     `gorm:"type:text" json:"preventiveAction"`
	DueDate          *time.Time `json:"dueDate"`
	Owner            string     `gorm:"type:varchar(255);not null;index" json:"owner"`
	Status           CAPAStatus `gorm:"type:varchar(20);not null;default:'Open'" json:"status"`
	CreatedAt        time.Time  `gorm:"not null" json:"createdAt"`

	Request *RequestModel `gorm:"foreignKey:RequestID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (CAPAModel) TableName() string {
	return "capas"
}

// Validate 验证 CAPA 模型
func (cm *CAPAModel) Validate() error {
	if cm.ID == "" {
		return errors.New("CAPA ID is required")
	}
	if cm.RequestID == "" {
		return errors.New("request ID is required")
	}
	if cm.Owner == "" {
		return errors.New("owner is required")
	}
	if cm.Status == "" {
		cm.Status = CAPAStatusOpen
	}
	if !cm.Status.Valid() {
		return fmt.Errorf("unknown CAPA status %q", cm.Status)
	}
	return nil
}
