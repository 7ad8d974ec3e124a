package xctx

import (
	"context"
	"log/slog"
)

// AppendTenantAttrs 将 context 中的租户信息追加到现有切片，只追加非空字段。
// 热路径调用方传入预分配切片以避免分配。
func AppendTenantAttrs(attrs []slog.Attr, ctx context.Context) []slog.Attr {
	if ctx == nil {
		return attrs
	}
	if v := TenantID(ctx); v != "" {
		attrs = append(attrs, slog.String(KeyTenantID, v))
	}
	if v := TenantSource(ctx); v != "" {
		attrs = append(attrs, slog.String(KeyTenantSource, v))
	}
	return attrs
}

// TenantAttrs 从 context 提取租户信息，转换为 slog.Attr 切片。
// 都为空时返回 nil。
func TenantAttrs(ctx context.Context) []slog.Attr {
	attrs := AppendTenantAttrs(make([]slog.Attr, 0, tenantFieldCount), ctx)
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
