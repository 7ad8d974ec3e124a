package xtenant

import (
	"context"
	"net/http"
)

// HTTP Header 名称
const (
	HeaderForwardedHost = "X-Forwarded-Host"
	HeaderAuthorization = "Authorization"
)

type verifiedTokenKey struct{}

// WithVerifiedToken 由上游认证中间件调用，保存已验证并解析的 token。
func WithVerifiedToken(ctx context.Context, token any) context.Context {
	return context.WithValue(ctx, verifiedTokenKey{}, token)
}

// VerifiedToken 返回 WithVerifiedToken 保存的 token，不存在返回 nil。
func VerifiedToken(ctx context.Context) any {
	if ctx == nil {
		return nil
	}
	return ctx.Value(verifiedTokenKey{})
}

// RequestFromHTTP 从 HTTP 请求构造解析输入。
func RequestFromHTTP(r *http.Request) Request {
	if r == nil {
		return Request{}
	}
	req := Request{
		ForwardedHost: r.Header.Get(HeaderForwardedHost),
		Authorization: r.Header.Get(HeaderAuthorization),
		Token:         VerifiedToken(r.Context()),
	}
	if r.URL != nil {
		req.Path = r.URL.Path
	}
	return req
}

// ResolveHTTP 解析 HTTP 请求的租户。
func (r *Resolver) ResolveHTTP(req *http.Request) (Resolution, error) {
	if req == nil {
		return Resolution{}, nil
	}
	return r.Resolve(req.Context(), RequestFromHTTP(req))
}

// =============================================================================
// HTTP 中间件
// =============================================================================

// MiddlewareOption 中间件选项
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	requireTenant bool
	baggage       bool
	errorHandler  func(http.ResponseWriter, *http.Request, error)
}

// WithRequireTenant 要求每个请求都解析出租户。
// 没有租户时按认证状态返回 401（Protected）或 400（Public）。
func WithRequireTenant() MiddlewareOption {
	return func(cfg *middlewareConfig) {
		cfg.requireTenant = true
	}
}

// WithBaggagePropagation 将租户写入 trace baggage。
func WithBaggagePropagation() MiddlewareOption {
	return func(cfg *middlewareConfig) {
		cfg.baggage = true
	}
}

// WithErrorHandler 自定义错误响应，默认按 HTTPStatus 写出状态码与错误信息。
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(cfg *middlewareConfig) {
		if fn != nil {
			cfg.errorHandler = fn
		}
	}
}

func newMiddlewareConfig(opts []MiddlewareOption) *middlewareConfig {
	cfg := &middlewareConfig{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	http.Error(w, err.Error(), HTTPStatus(err))
}

// HTTPMiddleware 每个请求解析一次租户并写入 context。
//
// 写入的值只存在于派生 context，请求结束即失效；next 不会看到上一个请求的租户。
func HTTPMiddleware(resolver *Resolver, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := newMiddlewareConfig(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := resolveIntoContext(resolver, r, cfg)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveIntoContext(resolver *Resolver, r *http.Request, cfg *middlewareConfig) (context.Context, error) {
	res, err := resolver.ResolveHTTP(r)
	if err != nil {
		return nil, err
	}
	return attachResolution(r.Context(), res, cfg)
}

// attachResolution 按中间件配置校验并写入解析结果，HTTP 与 gRPC 共用。
func attachResolution(ctx context.Context, res Resolution, cfg *middlewareConfig) (context.Context, error) {
	if cfg.requireTenant {
		if _, err := res.Require(); err != nil {
			return nil, err
		}
	}

	ctx, err := Attach(ctx, res)
	if err != nil {
		return nil, err
	}
	if cfg.baggage && res.HasTenant() {
		return WithBaggage(ctx, res.TenantID)
	}
	// 上游传入的 tenant_id baggage 不可信，以本次解析结果为准
	return WithoutBaggage(ctx), nil
}
