package service_test

import (
	"errors"
	"testing"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/service"
	"github.com/stretchr/testify/assert"
)

// TestErrors_Messages 测试错误信息
func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, "outcome: must be set", (&service.ValidationError{Field: "outcome", Message: "must be set"}).Error())
	assert.Equal(t, "must be set", (&service.ValidationError{Message: "must be set"}).Error())
	assert.Equal(t, "request r1 not found", (&service.NotFoundError{Resource: "request", ID: "r1"}).Error())
	assert.Contains(t, (&service.ConflictError{ID: "r1", Status: model.RequestStatusApproved}).Error(), "Approved")

	// 权限错误不包含请求 ID
	assert.NotContains(t, (&service.AuthorizationError{Role: "Tech"}).Error(), "r1")
}

// TestPersistenceError_Unwrap 测试存储错误可展开
func TestPersistenceError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &service.PersistenceError{Op: "append approval action", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "append approval action")
}
