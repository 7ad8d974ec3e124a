package xtenant

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/propagation"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Metadata Key 名称（遵循小写加连字符的 gRPC 惯例）
const (
	MetaForwardedHost = "x-forwarded-host"
	MetaAuthorization = "authorization"
)

// =============================================================================
// gRPC Metadata 提取
// =============================================================================

// RequestFromMetadata 从 gRPC Metadata 构造解析输入。
// fullMethod（如 "/acme.v1.Orders/Get"）作为路径参与路径规则匹配。
func RequestFromMetadata(ctx context.Context, fullMethod string) Request {
	req := Request{
		Path:  fullMethod,
		Token: VerifiedToken(ctx),
	}
	if ctx == nil {
		return req
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return req
	}
	req.ForwardedHost = getMetadataValue(md, MetaForwardedHost)
	req.Authorization = getMetadataValue(md, MetaAuthorization)
	return req
}

// ResolveGRPC 解析 gRPC 请求的租户。
func (r *Resolver) ResolveGRPC(ctx context.Context, fullMethod string) (Resolution, error) {
	return r.Resolve(ctx, RequestFromMetadata(ctx, fullMethod))
}

// GRPCCode 将租户错误映射为 gRPC 状态码，与 HTTPStatus 一一对应。
//
//   - nil: OK
//   - MissingTenant(Protected): Unauthenticated
//   - MissingTenant(Public) / InvalidTenantFormat / InvalidTenant: InvalidArgument
//   - 其他: Internal
func GRPCCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	var missing *MissingTenantError
	if errors.As(err, &missing) {
		if missing.Kind == MissingProtected {
			return codes.Unauthenticated
		}
		return codes.InvalidArgument
	}
	if errors.Is(err, ErrInvalidTenantFormat) || errors.Is(err, ErrInvalidTenant) {
		return codes.InvalidArgument
	}
	return codes.Internal
}

// =============================================================================
// gRPC 服务端拦截器
// =============================================================================

// GRPCUnaryServerInterceptor 返回 gRPC 一元拦截器，每次调用解析一次租户并写入 context。
// 支持 WithRequireTenant 与 WithBaggagePropagation；WithErrorHandler 不适用。
func GRPCUnaryServerInterceptor(resolver *Resolver, opts ...MiddlewareOption) grpc.UnaryServerInterceptor {
	cfg := newMiddlewareConfig(opts)
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		ctx, err := resolveGRPCIntoContext(ctx, resolver, fullMethodOf(info), cfg)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// GRPCStreamServerInterceptor 返回 gRPC 流式拦截器。
func GRPCStreamServerInterceptor(resolver *Resolver, opts ...MiddlewareOption) grpc.StreamServerInterceptor {
	cfg := newMiddlewareConfig(opts)
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		method := ""
		if info != nil {
			method = info.FullMethod
		}
		ctx, err := resolveGRPCIntoContext(ss.Context(), resolver, method, cfg)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})
	}
}

// wrappedServerStream 包装 ServerStream 以覆盖 Context
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context 返回包装后的 context
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

func resolveGRPCIntoContext(ctx context.Context, resolver *Resolver, fullMethod string, cfg *middlewareConfig) (context.Context, error) {
	res, err := resolver.ResolveGRPC(ctx, fullMethod)
	if err == nil {
		ctx, err = attachResolution(ctx, res, cfg)
	}
	if err != nil {
		return nil, status.Error(GRPCCode(err), err.Error())
	}
	return ctx, nil
}

func fullMethodOf(info *grpc.UnaryServerInfo) string {
	if info == nil {
		return ""
	}
	return info.FullMethod
}

// =============================================================================
// gRPC 客户端拦截器（baggage 传播）
// =============================================================================

// InjectToOutgoingContext 将 context 中的 baggage（含租户成员）写入 outgoing metadata。
// 使用 Set 语义覆盖已有的 baggage key。
func InjectToOutgoingContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	md, ok := metadata.FromOutgoingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	propagation.Baggage{}.Inject(ctx, metadataCarrier(md))
	if len(md) == 0 {
		return ctx
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// ExtractFromIncomingContext 将 incoming metadata 中的 baggage 还原到 context。
// 还原的租户成员只用于关联，不参与租户解析。
func ExtractFromIncomingContext(ctx context.Context) context.Context {
	if ctx == nil {
		return nil
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ctx
	}
	return propagation.Baggage{}.Extract(ctx, metadataCarrier(md))
}

// GRPCUnaryClientInterceptor 返回 gRPC 客户端一元拦截器，向下游传播 baggage。
func GRPCUnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		return invoker(InjectToOutgoingContext(ctx), method, req, reply, cc, opts...)
	}
}

// GRPCStreamClientInterceptor 返回 gRPC 客户端流式拦截器，向下游传播 baggage。
func GRPCStreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		return streamer(InjectToOutgoingContext(ctx), desc, cc, method, opts...)
	}
}

// =============================================================================
// 内部辅助函数
// =============================================================================

// metadataCarrier 让 metadata.MD 实现 propagation.TextMapCarrier。
type metadataCarrier metadata.MD

func (c metadataCarrier) Get(key string) string {
	values := metadata.MD(c).Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func (c metadataCarrier) Set(key, value string) {
	metadata.MD(c).Set(key, value)
}

func (c metadataCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// getMetadataValue 获取 metadata 中的值（取第一个，去除空白）
func getMetadataValue(md metadata.MD, key string) string {
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
