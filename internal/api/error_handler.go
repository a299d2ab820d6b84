package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohamadacma/capflow-demo/internal/service"
)

// APIError API 错误
type APIError struct {
	Code    int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorHandlerMiddleware 错误处理中间件
// 处理器通过 c.Error 上报的错误在此统一转换为 JSON 响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
			return
		}
		apiErr = FromServiceError(err)
		Error(c, apiErr.Code, apiErr.Message, apiErr.Detail)
	}
}

// FromServiceError 将服务层错误映射为 HTTP 错误
func FromServiceError(err error) *APIError {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		authErr       *service.AuthorizationError
		conflictErr   *service.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		return &APIError{Code: http.StatusBadRequest, Message: "invalid request", Detail: validationErr.Error()}
	case errors.As(err, &authErr):
		return &APIError{Code: http.StatusForbidden, Message: "forbidden", Detail: authErr.Error()}
	case errors.As(err, &notFoundErr):
		return &APIError{Code: http.StatusNotFound, Message: "not found", Detail: notFoundErr.Error()}
	case errors.As(err, &conflictErr):
		return &APIError{Code: http.StatusConflict, Message: "conflict", Detail: conflictErr.Error()}
	default:
		// 存储层错误不向调用者暴露细节
		return &APIError{Code: http.StatusInternalServerError, Message: "internal server error"}
	}
}

// WrapError 包装错误,指定响应状态码与消息
func WrapError(err error, code int, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Detail:  err.Error(),
	}
}

// abortWithError 上报错误并终止处理链,由 ErrorHandlerMiddleware 统一输出
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
