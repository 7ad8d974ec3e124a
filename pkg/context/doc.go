// Package context 提供上下文与租户身份相关的子包。
//
// 子包列表：
//   - xctx: Context 键与访问器，租户 ID、来源、认证标记
//   - xtenant: 租户解析、路径规则、HTTP/gRPC 中间件、baggage 传播
//
// 设计原则：
//   - 租户信息通过 context.Context 显式传递，不使用全局或 goroutine 局部状态
//   - 解析只在请求入口发生一次，下游只读取
package context
