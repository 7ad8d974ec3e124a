package xtenant

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/baggage"

	"github.com/omeyang/xtenancy/pkg/context/xctx"
)

// BaggageKey 是租户在 trace baggage 中的成员名。
const BaggageKey = xctx.KeyTenantID

// WithBaggage 将租户投射到 OpenTelemetry baggage，供下游服务关联。
// 空租户不写入。
func WithBaggage(ctx context.Context, id TenantID) (context.Context, error) {
	if ctx == nil {
		return nil, xctx.ErrNilContext
	}
	if id == "" {
		return ctx, nil
	}
	member, err := baggage.NewMemberRaw(BaggageKey, id.String())
	if err != nil {
		return nil, fmt.Errorf("xtenant: baggage member: %w", err)
	}
	b, err := baggage.FromContext(ctx).SetMember(member)
	if err != nil {
		return nil, fmt.Errorf("xtenant: set baggage: %w", err)
	}
	return baggage.ContextWithBaggage(ctx, b), nil
}

// WithoutBaggage 移除 baggage 中的租户成员，其余成员保留。
// 复用基础 context 处理下一请求前调用，避免租户泄漏。
func WithoutBaggage(ctx context.Context) context.Context {
	if ctx == nil {
		return nil
	}
	b := baggage.FromContext(ctx)
	if b.Member(BaggageKey).Key() == "" {
		return ctx
	}
	return baggage.ContextWithBaggage(ctx, b.DeleteMember(BaggageKey))
}

// TenantIDFromBaggage 从 baggage 读取租户，不存在或不合法时返回空值。
func TenantIDFromBaggage(ctx context.Context) TenantID {
	if ctx == nil {
		return ""
	}
	v := baggage.FromContext(ctx).Member(BaggageKey).Value()
	id, err := NormalizeTenantID(v)
	if err != nil {
		return ""
	}
	return id
}
