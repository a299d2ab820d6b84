package model_test

import (
	"testing"
	"time"

	"github.com/mohamadacma/capflow-demo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseOutcome 测试审批结果解析
func TestParseOutcome(t *testing.T) {
	tests := []struct {
		input   string
		want    model.Outcome
		wantErr bool
	}{
		{"Approved", model.OutcomeApproved, false},
		{"approved", model.OutcomeApproved, false},
		{" REJECTED ", model.OutcomeRejected, false},
		{"Maybe", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := model.ParseOutcome(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestOutcome_Status 测试审批结果对应的终态
func TestOutcome_Status(t *testing.T) {
	assert.Equal(t, model.RequestStatusApproved, model.OutcomeApproved.Status())
	assert.Equal(t, model.RequestStatusRejected, model.OutcomeRejected.Status())
	assert.True(t, model.OutcomeApproved.Status().IsTerminal())
	assert.True(t, model.OutcomeRejected.Status().IsTerminal())
}

// TestRequestStatus_IsTerminal 测试终态判断
func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.False(t, model.RequestStatusNew.IsTerminal())
	assert.False(t, model.RequestStatusPending.IsTerminal())
	assert.True(t, model.RequestStatusApproved.IsTerminal())
	assert.True(t, model.RequestStatusRejected.IsTerminal())

	assert.True(t, model.RequestStatusPending.Valid())
	assert.False(t, model.RequestStatus("Closed").Valid())
}

// TestParseRole 测试角色解析
func TestParseRole(t *testing.T) {
	assert.Equal(t, model.RoleQA, model.ParseRole("QA"))
	assert.Equal(t, model.RoleQA, model.ParseRole("qa"))
	assert.Equal(t, model.RoleTech, model.ParseRole(" tech "))
	assert.Equal(t, model.Role("Auditor"), model.ParseRole("Auditor"))

	assert.True(t, model.ParseRole("Qa").IsReviewer())
	assert.False(t, model.ParseRole("Tech").IsReviewer())
	assert.False(t, model.ParseRole("").IsReviewer())
	assert.False(t, model.ParseRole("Auditor").IsReviewer())
}

// TestRequestModel_CheckInvariants 测试批准时间与状态一致性
func TestRequestModel_CheckInvariants(t *testing.T) {
	now := time.Now()

	pending := &model.RequestModel{Status: model.RequestStatusPending}
	assert.NoError(t, pending.CheckInvariants())

	approved := &model.RequestModel{Status: model.RequestStatusApproved, ApprovedAt: &now}
	assert.NoError(t, approved.CheckInvariants())

	missing := &model.RequestModel{Status: model.RequestStatusApproved}
	assert.Error(t, missing.CheckInvariants())

	rejected := &model.RequestModel{Status: model.RequestStatusRejected, ApprovedAt: &now}
	assert.Error(t, rejected.CheckInvariants())
}

// TestRequestModel_Validate 测试请求模型验证
func TestRequestModel_Validate(t *testing.T) {
	req := &model.RequestModel{
		ID:          "req-001",
		Title:       "Update SOP-12",
		Type:        model.DefaultRequestType,
		RequestedBy: "alice@lab",
		Status:      model.RequestStatusPending,
	}
	assert.NoError(t, req.Validate())

	req.Title = "   "
	assert.Error(t, req.Validate())

	req.Title = "Update SOP-12"
	req.Status = "Unknown"
	assert.Error(t, req.Validate())

	assert.Equal(t, "requests", model.RequestModel{}.TableName())
}

// TestApprovalActionModel_Validate 测试审批动作验证
func TestApprovalActionModel_Validate(t *testing.T) {
	action := &model.ApprovalActionModel{
		RequestID: "req-001",
		Actor:     "bob@qa",
		Outcome:   model.OutcomeApproved,
		At:        time.Now(),
	}
	assert.NoError(t, action.Validate())

	action.Outcome = "Maybe"
	assert.Error(t, action.Validate())

	action.Outcome = model.OutcomeRejected
	action.Actor = ""
	assert.Error(t, action.Validate())
}

// TestCAPAModel_Validate 测试 CAPA 验证
func TestCAPAModel_Validate(t *testing.T) {
	capa := &model.CAPAModel{ID: "capa-001", RequestID: "req-001", Owner: "bob@qa", Status: model.CAPAStatusOpen}
	assert.NoError(t, capa.Validate())

	capa.Status = model.CAPAStatusClosed
	assert.NoError(t, capa.Validate())

	capa.Status = "Archived"
	assert.Error(t, capa.Validate())

	capa.Status = ""
	assert.NoError(t, capa.Validate())
	assert.Equal(t, model.CAPAStatusOpen, capa.Status)

	capa.Owner = ""
	assert.Error(t, capa.Validate())
}

// TestUserModel_Validate 测试用户验证
func TestUserModel_Validate(t *testing.T) {
	user := &model.UserModel{Name: "Bob", Email: "bob@qa", Role: model.RoleQA}
	assert.NoError(t, user.Validate())

	user.Email = ""
	assert.Error(t, user.Validate())
}
