package xtenant

import (
	"errors"
	"fmt"
	"net/http"
)

// =============================================================================
// 租户解析错误
// =============================================================================

var (
	// ErrInvalidTenantFormat 租户标识不满足字符集约束
	ErrInvalidTenantFormat = errors.New("xtenant: invalid tenant format")

	// ErrInvalidTenant Header 与 Token 解析出的租户不一致
	ErrInvalidTenant = errors.New("xtenant: tenant conflict")

	// ErrMissingTenant 需要租户但无法确定
	ErrMissingTenant = errors.New("xtenant: missing tenant")

	// ErrInvalidPathRule 路径规则配置非法
	ErrInvalidPathRule = errors.New("xtenant: invalid path rule")

	// ErrNoToken Authorization 声明了 Bearer，但上游未提供已验证的 token
	ErrNoToken = errors.New("xtenant: no verified token")

	// ErrMissingClaim token 中没有租户声明
	ErrMissingClaim = errors.New("xtenant: tenant claim not found")
)

// MissingKind 区分缺失租户的请求类型。
type MissingKind uint8

const (
	// MissingPublic 匿名请求没有任何租户信号。
	MissingPublic MissingKind = iota + 1
	// MissingProtected 已认证请求无法得到租户，通常是 token/声明问题。
	MissingProtected
)

// String 返回缺失类型名称。
func (k MissingKind) String() string {
	switch k {
	case MissingPublic:
		return "public"
	case MissingProtected:
		return "protected"
	default:
		return "unknown"
	}
}

// MissingTenantError 表示缺失租户，errors.Is(err, ErrMissingTenant) 为 true。
type MissingTenantError struct {
	Kind  MissingKind
	Cause error
}

// Error 实现 error 接口。
func (e *MissingTenantError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("xtenant: missing tenant (%s): %v", e.Kind, e.Cause)
	}
	return fmt.Sprintf("xtenant: missing tenant (%s)", e.Kind)
}

// Unwrap 同时暴露 ErrMissingTenant 与底层原因。
func (e *MissingTenantError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrMissingTenant}
	}
	return []error{ErrMissingTenant, e.Cause}
}

func missingTenant(kind MissingKind, cause error) error {
	return &MissingTenantError{Kind: kind, Cause: cause}
}

// ConflictError 记录冲突双方，errors.Is(err, ErrInvalidTenant) 为 true。
type ConflictError struct {
	Header TenantID
	Token  TenantID
}

// Error 实现 error 接口。
func (e *ConflictError) Error() string {
	return fmt.Sprintf("xtenant: tenant conflict: header %q, token %q", e.Header, e.Token)
}

// Unwrap 返回 ErrInvalidTenant。
func (e *ConflictError) Unwrap() error {
	return ErrInvalidTenant
}

// IsTenantError 报告 err 是否为租户解析的业务错误（客户端错误）。
func IsTenantError(err error) bool {
	return errors.Is(err, ErrInvalidTenantFormat) ||
		errors.Is(err, ErrInvalidTenant) ||
		errors.Is(err, ErrMissingTenant)
}

// HTTPStatus 将租户错误映射为 HTTP 状态码。
//
//   - nil: 200
//   - MissingTenant(Protected): 401
//   - MissingTenant(Public): 400
//   - InvalidTenantFormat / InvalidTenant: 400
//   - 其他: 500
//
// MissingTenantError 优先判断：无效的 token 声明同时包装了 ErrInvalidTenantFormat。
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var missing *MissingTenantError
	if errors.As(err, &missing) {
		if missing.Kind == MissingProtected {
			return http.StatusUnauthorized
		}
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInvalidTenantFormat) || errors.Is(err, ErrInvalidTenant) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
