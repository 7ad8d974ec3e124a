// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，自动注入租户与追踪字段
//   - xmetrics: 统一观测接口，OpenTelemetry 追踪与指标实现
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 组件接受可选的 Logger/Observer，未设置时零开销
package observability
