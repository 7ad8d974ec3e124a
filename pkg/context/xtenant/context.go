package xtenant

import (
	"context"

	"github.com/omeyang/xtenancy/pkg/context/xctx"
)

// =============================================================================
// Context 操作
// =============================================================================

// Attach 将解析结果写入 context，供本请求后续阶段读取，无需重复解析。
//
// 非空 TenantID 会重新规范化；不合法返回 ErrInvalidTenantFormat。
// ctx 为 nil 返回 xctx.ErrNilContext。
func Attach(ctx context.Context, res Resolution) (context.Context, error) {
	if ctx == nil {
		return nil, xctx.ErrNilContext
	}
	if res.TenantID != "" {
		id, err := NormalizeTenantID(string(res.TenantID))
		if err != nil {
			return nil, err
		}
		res.TenantID = id
	}

	ctx, err := xctx.WithTenantID(ctx, res.TenantID.String())
	if err != nil {
		return nil, err
	}
	if ctx, err = xctx.WithTenantSource(ctx, res.Source.String()); err != nil {
		return nil, err
	}
	return xctx.WithAuthenticated(ctx, res.Authenticated)
}

// Current 返回 context 中的解析结果，未经过 Attach 时 ok 为 false。
func Current(ctx context.Context) (Resolution, bool) {
	authenticated, ok := xctx.Authenticated(ctx)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{
		TenantID:      TenantID(xctx.TenantID(ctx)),
		Source:        ParseSource(xctx.TenantSource(ctx)),
		Authenticated: authenticated,
	}, true
}

// RequireTenant 返回 context 中的租户。
//
// 未解析或没有租户时返回 MissingTenant：已认证请求为 Protected，否则为 Public。
func RequireTenant(ctx context.Context) (TenantID, error) {
	if ctx == nil {
		return "", xctx.ErrNilContext
	}
	res, _ := Current(ctx)
	return res.Require()
}

// TenantIDFrom 返回 context 中的租户，没有时返回空值。
func TenantIDFrom(ctx context.Context) TenantID {
	return TenantID(xctx.TenantID(ctx))
}
