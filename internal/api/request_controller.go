package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/mohamadacma/capflow-demo/internal/service"
	"github.com/mohamadacma/capflow-demo/internal/utils"
)

// RoleHeader 调用者角色请求头
const RoleHeader = "X-User-Role"

// RequestController 变更请求控制器
type RequestController struct {
	requestService  service.RequestService
	decisionService service.DecisionService
}

// NewRequestController 创建变更请求控制器
func NewRequestController(requestService service.RequestService, decisionService service.DecisionService) *RequestController {
	return &RequestController{
		requestService:  requestService,
		decisionService: decisionService,
	}
}

// DecisionBody 审批决定请求体
// 字段缺省时回退到同名查询参数
type DecisionBody struct {
	Actor      string               `json:"actor" example:"bob@qa"`
	Outcome    string               `json:"outcome" example:"Approved"`
	Notes      *string              `json:"notes"`
	CreateCAPA *bool                `json:"createCapa"`
	CAPA       *service.CAPADetails `json:"capa"`
}

// validateRequestID 验证请求 ID 并返回错误响应（如果无效）
func (c *RequestController) validateRequestID(ctx *gin.Context, id string) bool {
	if err := utils.ValidateRequestID(id); err != nil {
		abortWithError(ctx, WrapError(err, http.StatusBadRequest, "invalid request ID"))
		return false
	}
	return true
}

// Create 创建变更请求
// @Summary  创建变更请求
// @Router   /requests [post]
func (c *RequestController) Create(ctx *gin.Context) {
	var input service.CreateRequestInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		abortWithError(ctx, WrapError(err, http.StatusBadRequest, "invalid request"))
		return
	}

	req, err := c.requestService.Create(ctx.Request.Context(), &input)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	Created(ctx, "/api/v1/requests/"+req.ID, req)
}

// List 列出所有变更请求
// @Router /requests [get]
func (c *RequestController) List(ctx *gin.Context) {
	reqs, err := c.requestService.List(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	Success(ctx, reqs)
}

// ListPending 列出待审批请求
// @Router /requests/pending [get]
func (c *RequestController) ListPending(ctx *gin.Context) {
	reqs, err := c.requestService.ListPending(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	Success(ctx, reqs)
}

// Get 获取变更请求详情
// @Router /requests/{id} [get]
func (c *RequestController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	req, err := c.requestService.Get(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	Success(ctx, req)
}

// Decide 批准或拒绝变更请求
// @Summary  审批决定
// @Param    X-User-Role header string true "调用者角色 (QA)"
// @Router   /requests/{id}/decision [post]
func (c *RequestController) Decide(ctx *gin.Context) {
	id := ctx.Param("id")
	role := ctx.GetHeader(RoleHeader)

	// 非审批角色在校验 ID 和请求体之前即返回 403
	if !model.ParseRole(role).IsReviewer() {
		if _, err := c.decisionService.Decide(ctx.Request.Context(), &service.DecisionInput{RequestID: id, ActorRole: role}); err != nil {
			abortWithError(ctx, err)
		}
		return
	}

	if !c.validateRequestID(ctx, id) {
		return
	}

	var body DecisionBody
	if err := ctx.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(ctx, WrapError(err, http.StatusBadRequest, "invalid request"))
		return
	}

	input := &service.DecisionInput{
		RequestID: id,
		ActorRole: role,
		Actor:     body.Actor,
		Outcome:   body.Outcome,
		CAPA:      body.CAPA,
	}
	if input.Actor == "" {
		input.Actor = ctx.Query("actor")
	}
	if input.Outcome == "" {
		input.Outcome = ctx.Query("outcome")
	}
	if body.Notes != nil {
		input.Notes = *body.Notes
	} else {
		input.Notes = ctx.Query("notes")
	}
	if body.CreateCAPA != nil {
		input.CreateCAPA = *body.CreateCAPA
	} else {
		input.CreateCAPA = utils.ParseBool(ctx.Query("createCapa"), false)
	}

	req, err := c.decisionService.Decide(ctx.Request.Context(), input)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	Success(ctx, req)
}

// ListCAPAs 列出所有 CAPA
// @Router /capas [get]
func (c *RequestController) ListCAPAs(ctx *gin.Context) {
	capas, err := c.requestService.ListCAPAs(ctx.Request.Context())
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	Success(ctx, capas)
}

// ListRequestCAPAs 列出请求下的 CAPA
// @Router /requests/{id}/capas [get]
func (c *RequestController) ListRequestCAPAs(ctx *gin.Context) {
	id := ctx.Param("id")
	if !c.validateRequestID(ctx, id) {
		return
	}

	capas, err := c.requestService.ListRequestCAPAs(ctx.Request.Context(), id)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	Success(ctx, capas)
}
