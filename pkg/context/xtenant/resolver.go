package xtenant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/omeyang/xtenancy/pkg/observability/xlog"
	"github.com/omeyang/xtenancy/pkg/observability/xmetrics"
)

const bearerPrefix = "bearer"

// Request 是解析租户所需的请求输入，与传输层无关。
type Request struct {
	// Path 请求路径，用于选择 PathRule。
	Path string
	// ForwardedHost X-Forwarded-Host 原始值。
	ForwardedHost string
	// Authorization Authorization 原始值。
	Authorization string
	// Token 上游验证器已解析的 token，未认证时为 nil。
	Token any
}

// ResolverOption 配置 Resolver。
type ResolverOption func(*Resolver)

// WithResolverLogger 设置日志，冲突与缺失路径以 Debug 级别记录。
func WithResolverLogger(logger xlog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithResolverObserver 设置观测器。
func WithResolverObserver(observer xmetrics.Observer) ResolverOption {
	return func(r *Resolver) {
		r.observer = observer
	}
}

// Resolver 综合转发主机名与 Bearer token 得到每个请求唯一的租户。
// 无状态，可并发使用。
type Resolver struct {
	paths    *PathConfig
	claims   ClaimsExtractor
	logger   xlog.Logger
	observer xmetrics.Observer
}

// NewResolver 创建 Resolver。
//
// paths 为 nil 时 Header 来源永远为空；claims 为 nil 时使用 NewJWTClaimsExtractor()。
func NewResolver(paths *PathConfig, claims ClaimsExtractor, opts ...ResolverOption) *Resolver {
	if claims == nil {
		claims = NewJWTClaimsExtractor()
	}
	r := &Resolver{paths: paths, claims: claims}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve 解析租户。
//
// 规则：
//  1. 转发主机名经路径规则提取出非空值时必须合法，否则返回 ErrInvalidTenantFormat
//  2. Authorization 以 "bearer"（大小写不敏感）开头时从 token 读取租户声明，
//     失败返回 MissingTenant(Protected) 并包装原因
//  3. 两者都存在且不同返回 ErrInvalidTenant（*ConflictError）
//  4. 两者相同或只有 token 时以 token 为准；只有 Header 时以 Header 为准
//  5. 都没有时返回零值 Resolution，由下游 Require 决定是否报错
func (r *Resolver) Resolve(ctx context.Context, in Request) (res Resolution, err error) {
	ctx, span := xmetrics.Start(ctx, r.observer, xmetrics.SpanOptions{
		Component: "xtenant",
		Operation: "resolve",
		Kind:      xmetrics.KindServer,
	})
	defer func() {
		span.End(resolveResult(res, err))
	}()

	header, err := r.fromHeader(in.Path, in.ForwardedHost)
	if err != nil {
		r.debug(ctx, "invalid forwarded host tenant", xlog.Err(err))
		return Resolution{}, err
	}

	authenticated := hasBearerPrefix(in.Authorization)
	var token TenantID
	if authenticated {
		token, err = r.fromToken(ctx, in.Token)
		if err != nil {
			r.debug(ctx, "tenant claim unavailable", xlog.Err(err))
			return Resolution{}, missingTenant(MissingProtected, err)
		}
	}

	switch {
	case header != "" && token != "":
		if header != token {
			r.debug(ctx, "tenant conflict",
				slog.String("header_tenant", header.String()),
				slog.String("token_tenant", token.String()))
			return Resolution{}, &ConflictError{Header: header, Token: token}
		}
		return Resolution{TenantID: token, Source: SourceToken, Authenticated: true}, nil
	case token != "":
		return Resolution{TenantID: token, Source: SourceToken, Authenticated: true}, nil
	case header != "":
		return Resolution{TenantID: header, Source: SourceHeader, Authenticated: authenticated}, nil
	default:
		return Resolution{Authenticated: authenticated}, nil
	}
}

func (r *Resolver) fromHeader(path, forwardedHost string) (TenantID, error) {
	if strings.TrimSpace(forwardedHost) == "" {
		return "", nil
	}
	raw := r.paths.Extract(path, forwardedHost)
	if raw == "" {
		return "", nil
	}
	return NormalizeTenantID(raw)
}

func (r *Resolver) fromToken(ctx context.Context, token any) (TenantID, error) {
	if token == nil {
		return "", ErrNoToken
	}
	raw, err := r.claims.TenantClaim(ctx, token)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", ErrMissingClaim
	}
	return NormalizeTenantID(raw)
}

func (r *Resolver) debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	if r.logger == nil {
		return
	}
	r.logger.Debug(ctx, msg, append(attrs, xlog.Component("xtenant"))...)
}

func hasBearerPrefix(authorization string) bool {
	s := strings.TrimLeft(authorization, " \t")
	return len(s) >= len(bearerPrefix) && strings.EqualFold(s[:len(bearerPrefix)], bearerPrefix)
}

func resolveResult(res Resolution, err error) xmetrics.Result {
	if err != nil {
		if IsTenantError(err) {
			return xmetrics.Result{Status: xmetrics.StatusRejected, Err: err}
		}
		return xmetrics.Result{Err: err}
	}
	attrs := []xmetrics.Attr{xmetrics.String("tenant_source", res.Source.String())}
	if res.HasTenant() {
		attrs = append(attrs, xmetrics.Tenant(res.TenantID.String()))
	}
	return xmetrics.Result{Attrs: attrs}
}
