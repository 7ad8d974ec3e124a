package xctx

import "context"

// =============================================================================
// 日志/追踪字段 Key
// =============================================================================

// 租户字段 Key，遵循下划线分隔的命名约定。
// KeyTenantID 同时用作 trace baggage 成员名。
const (
	KeyTenantID      = "tenant_id"
	KeyTenantSource  = "tenant_source"
	KeyAuthenticated = "authenticated"

	tenantFieldCount = 2
)

const (
	keyTenantID      = contextKey("xctx:tenant_id")
	keyTenantSource  = contextKey("xctx:tenant_source")
	keyAuthenticated = contextKey("xctx:authenticated")
)

// =============================================================================
// TenantID
// =============================================================================

// WithTenantID 将 tenant ID 注入 context
//
// 如果 ctx 为 nil，返回 ErrNilContext。不校验 value。
func WithTenantID(ctx context.Context, tenantID string) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keyTenantID, tenantID), nil
}

// TenantID 从 context 提取 tenant ID，不存在返回空字符串
func TenantID(ctx context.Context) string {
	return stringValue(ctx, keyTenantID)
}

// RequireTenantID 从 context 获取 tenant ID，不存在则返回 ErrMissingTenantID。
// 如果 ctx 为 nil，返回 ErrNilContext。
func RequireTenantID(ctx context.Context) (string, error) {
	if ctx == nil {
		return "", ErrNilContext
	}
	v := TenantID(ctx)
	if v == "" {
		return "", ErrMissingTenantID
	}
	return v, nil
}

// =============================================================================
// TenantSource
// =============================================================================

// WithTenantSource 将租户来源注入 context
func WithTenantSource(ctx context.Context, source string) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keyTenantSource, source), nil
}

// TenantSource 从 context 提取租户来源，不存在返回空字符串
func TenantSource(ctx context.Context) string {
	return stringValue(ctx, keyTenantSource)
}

// =============================================================================
// Authenticated
// =============================================================================

// WithAuthenticated 标记请求是否携带 Bearer 凭证
func WithAuthenticated(ctx context.Context, authenticated bool) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	return context.WithValue(ctx, keyAuthenticated, authenticated), nil
}

// Authenticated 返回认证标记。ok 为 false 表示未设置。
func Authenticated(ctx context.Context) (value, ok bool) {
	if ctx == nil {
		return false, false
	}
	value, ok = ctx.Value(keyAuthenticated).(bool)
	return value, ok
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
