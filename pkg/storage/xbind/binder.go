package xbind

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omeyang/xtenancy/pkg/context/xtenant"
	"github.com/omeyang/xtenancy/pkg/observability/xlog"
)

// Option 配置 Binder。
type Option func(*Binder)

// WithLogger 设置日志，冲突以 Warn 级别记录。
func WithLogger(logger xlog.Logger) Option {
	return func(b *Binder) {
		b.logger = logger
	}
}

// Binder 将资源绑定到租户。无状态，可并发使用；资源本身不可并发。
type Binder struct {
	logger xlog.Logger
}

// NewBinder 创建 Binder。
func NewBinder(opts ...Option) *Binder {
	b := &Binder{}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

var defaultBinder = NewBinder()

// Bind 使用默认 Binder 绑定。
func Bind(ctx context.Context, res Resource, tenant xtenant.TenantID) error {
	return defaultBinder.Bind(ctx, res, tenant)
}

// Bind 将 res 绑定到 tenant。
//
// 未绑定时写入；已绑定相同租户时无操作（精确匹配）；
// 已绑定其他租户时返回 *ConflictError。
func (b *Binder) Bind(ctx context.Context, res Resource, tenant xtenant.TenantID) error {
	if res == nil {
		return ErrNilResource
	}
	if tenant == "" {
		return ErrEmptyTenant
	}
	if !xtenant.IsValidTenantID(tenant.String()) {
		return fmt.Errorf("xbind: %w: %q", xtenant.ErrInvalidTenantFormat, tenant)
	}

	bound, ok, err := res.TenantProperty(ctx)
	if err != nil {
		return fmt.Errorf("xbind: read tenant property: %w", err)
	}
	if ok && bound != "" {
		if bound == tenant.String() {
			return nil
		}
		conflict := &ConflictError{Bound: bound, Requested: tenant.String()}
		if b.logger != nil {
			b.logger.Warn(ctx, "resource tenant conflict",
				xlog.Component("xbind"),
				slog.String("bound_tenant", bound),
				slog.String("requested_tenant", tenant.String()))
		}
		return conflict
	}

	if err := res.SetTenantProperty(ctx, tenant.String()); err != nil {
		return fmt.Errorf("xbind: set tenant property: %w", err)
	}
	return nil
}

// RunInTenantTx 绑定资源后执行 fn，绑定失败时 fn 不执行。
func RunInTenantTx(ctx context.Context, res Resource, tenant xtenant.TenantID, fn func(ctx context.Context) error) error {
	return defaultBinder.RunInTenantTx(ctx, res, tenant, fn)
}

// RunInTenantTx 绑定资源后执行 fn，绑定失败时 fn 不执行。
func (b *Binder) RunInTenantTx(ctx context.Context, res Resource, tenant xtenant.TenantID, fn func(ctx context.Context) error) error {
	if err := b.Bind(ctx, res, tenant); err != nil {
		return err
	}
	return fn(ctx)
}
