package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ValidateRequestID 验证请求 ID 格式（UUID）
func ValidateRequestID(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ErrEmptyID
	}
	if len(trimmed) > 64 {
		return ErrIDTooLong
	}
	if _, err := uuid.Parse(trimmed); err != nil {
		return ErrInvalidIDFormat
	}
	return nil
}

// ParseBool 解析查询参数中的布尔值,无法识别时返回 def
func ParseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

// 错误定义
var (
	ErrEmptyID         = &ValidationError{Code: "EMPTY_ID", Message: "id cannot be empty"}
	ErrInvalidIDFormat = &ValidationError{Code: "INVALID_ID_FORMAT", Message: "id must be a UUID"}
	ErrIDTooLong       = &ValidationError{Code: "ID_TOO_LONG", Message: "id exceeds maximum length"}
)

// ValidationError 验证错误
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
