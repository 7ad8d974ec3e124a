// Package xtenant 提供多租户身份解析与传播。
//
// # 解析
//
// 每个请求的租户来自两个独立来源：
//   - X-Forwarded-Host：按请求路径选择 PathRule，用正则捕获组提取租户
//   - Bearer token：上游认证组件已验证并解析的 token 中的租户声明
//
// Resolver 按固定规则合并两者：提取出的值必须满足 ^[a-zA-Z0-9.-]+$；
// 两者都存在时必须相等（否则 ErrInvalidTenant），相等时返回 token 的值；
// Bearer 请求拿不到声明时返回 MissingTenant(Protected)；
// 都不存在时返回零值 Resolution，由需要租户的下游调用 Require。
//
// Header 受调用方控制，绝不能覆盖已认证的 token 租户。
//
// # 传播
//
// 优先显式传参。需要隐式读取时使用 context：
//
//	ctx, err := xtenant.Attach(ctx, res)
//	id, err := xtenant.RequireTenant(ctx)
//
// WithBaggage 将租户投射到 OpenTelemetry baggage 成员 tenant_id；
// xlog 的 EnrichHandler 从 context 读取 tenant_id 写入日志。
// context 随请求结束而丢弃，不存在跨请求的线程级状态。
//
// # 错误映射
//
// HTTPStatus 将错误确定性地映射为状态码：格式错误与冲突为 400，
// MissingTenant(Protected) 为 401，MissingTenant(Public) 为 400。
package xtenant
