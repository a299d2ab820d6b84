package service

import (
	"errors"
	"fmt"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"gorm.io/gorm"
)

// ValidationError 输入缺失或格式错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError 引用的实体不存在
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// AuthorizationError 调用者角色无权执行操作
// 错误信息不包含目标实体,避免泄露实体是否存在
type AuthorizationError struct {
	Role string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %q is not allowed to decide requests", e.Role)
}

// ConflictError 请求已处于终态,不能再次决定
type ConflictError struct {
	ID     string
	Status model.RequestStatus
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("request %s has already been decided (status %s)", e.ID, e.Status)
}

// PersistenceError 存储层失败,当前操作未生效
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// persistenceError 包装存储层错误,已是业务错误时原样返回
func persistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		authErr       *AuthorizationError
		conflictErr   *ConflictError
		persistErr    *PersistenceError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &authErr),
		errors.As(err, &conflictErr),
		errors.As(err, &persistErr):
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// lookupError 将记录不存在转换为 NotFoundError
func lookupError(resource, id, op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return persistenceError(op, err)
}
