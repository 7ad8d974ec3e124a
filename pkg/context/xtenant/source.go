package xtenant

// Source 表示租户标识的来源。
type Source uint8

const (
	// SourceNone 没有租户。
	SourceNone Source = iota
	// SourceHeader 来自 X-Forwarded-Host。
	SourceHeader
	// SourceToken 来自已验证的 Bearer token。
	SourceToken
)

// String 返回来源名称，用作日志与 context 中的 tenant_source 值。
func (s Source) String() string {
	switch s {
	case SourceHeader:
		return "header"
	case SourceToken:
		return "token"
	default:
		return "none"
	}
}

// ParseSource 解析来源名称，未知值返回 SourceNone。
func ParseSource(s string) Source {
	switch s {
	case "header":
		return SourceHeader
	case "token":
		return SourceToken
	default:
		return SourceNone
	}
}

// Resolution 是一次请求的租户解析结果，创建后不可变。
// 零值表示匿名请求且没有租户。
type Resolution struct {
	TenantID TenantID
	Source   Source
	// Authenticated 表示请求携带了 Bearer 凭证。
	Authenticated bool
}

// HasTenant 报告是否解析出了租户。
func (r Resolution) HasTenant() bool {
	return r.TenantID != ""
}

// Require 返回租户；没有租户时按认证状态返回
// MissingTenant(Protected) 或 MissingTenant(Public)。
func (r Resolution) Require() (TenantID, error) {
	if r.TenantID != "" {
		return r.TenantID, nil
	}
	if r.Authenticated {
		return "", missingTenant(MissingProtected, nil)
	}
	return "", missingTenant(MissingPublic, nil)
}
