package model

import (
	"fmt"
	"strings"
)

// RequestStatus 变更请求状态
type RequestStatus string

const (
	RequestStatusNew      RequestStatus = "New"
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

// OpenStatuses 可以被审批决定的状态
var OpenStatuses = []RequestStatus{RequestStatusNew, RequestStatusPending}

// AllStatuses 所有请求状态
var AllStatuses = []RequestStatus{
	RequestStatusNew,
	RequestStatusPending,
	RequestStatusApproved,
	RequestStatusRejected,
}

// IsTerminal 是否为终态（已批准或已拒绝）
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// Valid 是否为已知状态
func (s RequestStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Outcome 审批结果
type Outcome string

const (
	OutcomeApproved Outcome = "Approved"
	OutcomeRejected Outcome = "Rejected"
)

// ParseOutcome 解析审批结果,大小写不敏感,未知值返回错误
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved":
		return OutcomeApproved, nil
	case "rejected":
		return OutcomeRejected, nil
	default:
		return "", fmt.Errorf("unrecognized outcome %q", s)
	}
}

// Status 审批结果对应的请求终态
func (o Outcome) Status() RequestStatus {
	if o == OutcomeApproved {
		return RequestStatusApproved
	}
	return RequestStatusRejected
}

// Role 用户角色
type Role string

const (
	RoleTech Role = "Tech"
	RoleQA   Role = "QA"
)

// ParseRole 解析角色,大小写不敏感
// 未知角色原样返回,视为非审批人
func ParseRole(s string) Role {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "qa":
		return RoleQA
	case "tech":
		return RoleTech
	default:
		return Role(trimmed)
	}
}

// IsReviewer 是否有审批权限
func (r Role) IsReviewer() bool {
	return r == RoleQA
}

// CAPAStatus CAPA 状态
type CAPAStatus string

const (
	CAPAStatusOpen   CAPAStatus = "Open"
	CAPAStatusClosed CAPAStatus = "Closed"
)

// Valid 是否为已知 CAPA 状态
func (s CAPAStatus) Valid() bool {
	return s == CAPAStatusOpen || s == CAPAStatusClosed
}
