// Package xlog 基于 log/slog 的结构化日志。
//
// # 核心功能
//
//   - Builder 模式配置（输出目标、级别、格式、文件轮转）
//   - 自动从 context 注入 tenant_id、tenant_source、trace_id、span_id（EnrichHandler，默认启用）
//   - 动态级别调整
//   - 全局 Logger 便利函数
//
// # 创建 Logger
//
// Builder 采用 first-error-wins：遇到第一个配置错误后，后续 Set 操作被跳过，
// 错误在 Build 时返回。
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// # 租户字段
//
// tenant_id 来自 xctx（由 xtenant 中间件在解析后写入），trace_id/span_id 来自
// 当前 OpenTelemetry span。字段随 context 生灭，请求结束后不会残留到下一个请求。
package xlog
