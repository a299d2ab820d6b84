package model

import (
	"errors"
	"strings"
)

// UserModel 用户数据模型
type UserModel struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Role  Role   `gorm:"type:varchar(20);not null;default:'Tech'" json:"role"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// Validate 验证用户模型
func (um *UserModel) Validate() error {
	if strings.TrimSpace(um.Name) == "" {
		return errors.New("user name is required")
	}
	if strings.TrimSpace(um.Email) == "" {
		return errors.New("user email is required")
	}
	if um.Role == "" {
		um.Role = RoleTech
	}
	return nil
}
