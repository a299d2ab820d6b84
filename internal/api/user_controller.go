package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mohamadacma/capflow-demo/internal/service"
)

// UserController 用户控制器
type UserController struct {
	seedService *service.SeedService
}

// NewUserController 创建用户控制器
func NewUserController(seedService *service.SeedService) *UserController {
	return &UserController{seedService: seedService}
}

// List 列出用户及其角色
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	users, err := c.seedService.ListUsers(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	Success(ctx, users)
}
