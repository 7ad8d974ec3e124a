// Package xmetrics 提供统一的可观测性接口（metrics + tracing）。
//
// 业务代码只依赖 Observer/Span/Attr 接口；默认实现基于 OpenTelemetry。
// xtenant 用它观测租户解析，xtenantlock 用它观测按租户加锁。
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xtenantlock",
//		Operation: "with_lock",
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 指标
//
//   - xtenancy.operation.total
//   - xtenancy.operation.duration
//
// 指标属性只有 component / operation / status，租户 ID 只作为 span 属性出现，
// 避免指标基数随租户数增长。
package xmetrics
