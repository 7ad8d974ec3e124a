package xctx_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/omeyang/xtenancy/pkg/context/xctx"
)

func TestTenantID(t *testing.T) {
	t.Run("空context返回空字符串", func(t *testing.T) {
		if got := xctx.TenantID(context.Background()); got != "" {
			t.Errorf("TenantID(empty) = %q, want empty", got)
		}
	})

	t.Run("正常注入和提取", func(t *testing.T) {
		ctx, err := xctx.WithTenantID(context.Background(), "acme")
		if err != nil {
			t.Fatalf("WithTenantID() error = %v", err)
		}
		if got := xctx.TenantID(ctx); got != "acme" {
			t.Errorf("TenantID() = %q, want %q", got, "acme")
		}
	})

	t.Run("覆盖写入返回新值", func(t *testing.T) {
		ctx, _ := xctx.WithTenantID(context.Background(), "old")
		ctx, _ = xctx.WithTenantID(ctx, "new")
		if got := xctx.TenantID(ctx); got != "new" {
			t.Errorf("TenantID(overwrite) = %q, want %q", got, "new")
		}
	})

	t.Run("nil context", func(t *testing.T) {
		var nilCtx context.Context
		if got := xctx.TenantID(nilCtx); got != "" {
			t.Errorf("TenantID(nil) = %q, want empty", got)
		}
		if _, err := xctx.WithTenantID(nilCtx, "acme"); !errors.Is(err, xctx.ErrNilContext) {
			t.Errorf("WithTenantID(nil) error = %v, want %v", err, xctx.ErrNilContext)
		}
	})
}

func TestRequireTenantID(t *testing.T) {
	tests := []struct {
		name    string
		ctx     func() context.Context
		want    string
		wantErr error
	}{
		{"nil context", func() context.Context { return nil }, "", xctx.ErrNilContext},
		{"缺失", context.Background, "", xctx.ErrMissingTenantID},
		{"空字符串视为缺失", func() context.Context {
			ctx, _ := xctx.WithTenantID(context.Background(), "")
			return ctx
		}, "", xctx.ErrMissingTenantID},
		{"存在", func() context.Context {
			ctx, _ := xctx.WithTenantID(context.Background(), "acme")
			return ctx
		}, "acme", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := xctx.RequireTenantID(tt.ctx())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RequireTenantID() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RequireTenantID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTenantSource(t *testing.T) {
	ctx, err := xctx.WithTenantSource(context.Background(), "token")
	if err != nil {
		t.Fatalf("WithTenantSource() error = %v", err)
	}
	if got := xctx.TenantSource(ctx); got != "token" {
		t.Errorf("TenantSource() = %q, want %q", got, "token")
	}
	if _, err := xctx.WithTenantSource(nil, "token"); !errors.Is(err, xctx.ErrNilContext) { //nolint:staticcheck // 测试 nil ctx
		t.Errorf("WithTenantSource(nil) error = %v", err)
	}
}

func TestAuthenticated(t *testing.T) {
	if _, ok := xctx.Authenticated(context.Background()); ok {
		t.Error("Authenticated(empty) ok = true, want false")
	}

	ctx, err := xctx.WithAuthenticated(context.Background(), true)
	if err != nil {
		t.Fatalf("WithAuthenticated() error = %v", err)
	}
	v, ok := xctx.Authenticated(ctx)
	if !ok || !v {
		t.Errorf("Authenticated() = (%v, %v), want (true, true)", v, ok)
	}

	ctx, _ = xctx.WithAuthenticated(ctx, false)
	v, ok = xctx.Authenticated(ctx)
	if !ok || v {
		t.Errorf("Authenticated(false) = (%v, %v), want (false, true)", v, ok)
	}
}

func TestTenantAttrs(t *testing.T) {
	if attrs := xctx.TenantAttrs(context.Background()); attrs != nil {
		t.Errorf("TenantAttrs(empty) = %v, want nil", attrs)
	}

	ctx, _ := xctx.WithTenantID(context.Background(), "acme")
	ctx, _ = xctx.WithTenantSource(ctx, "header")
	attrs := xctx.TenantAttrs(ctx)
	if len(attrs) != 2 {
		t.Fatalf("len(TenantAttrs) = %d, want 2", len(attrs))
	}
	if attrs[0].Key != xctx.KeyTenantID || attrs[0].Value.String() != "acme" {
		t.Errorf("attrs[0] = %v", attrs[0])
	}
	if attrs[1].Key != xctx.KeyTenantSource || attrs[1].Value.String() != "header" {
		t.Errorf("attrs[1] = %v", attrs[1])
	}

	// 预分配切片追加
	buf := make([]slog.Attr, 0, 4)
	buf = xctx.AppendTenantAttrs(buf, nil)
	if len(buf) != 0 {
		t.Errorf("AppendTenantAttrs(nil ctx) len = %d, want 0", len(buf))
	}
}
