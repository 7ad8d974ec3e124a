// Package xctx 提供租户身份在 context 中的存取能力。
//
// xctx 是纯粹的存取层：只负责把租户信息写入 context、从 context 读出，
// 不做格式校验，也不做来源冲突判定（这些由 xtenant 负责）。
//
// # 字段
//
//   - tenant_id     : 已解析的租户标识（小写）
//   - tenant_source : 租户来源（header / token），用于审计与日志关联
//   - authenticated : 请求是否携带 Bearer 凭证
//
// # 命名约定
//
//	WithXxx(ctx, value)    - 注入：将 value 写入 context
//	Xxx(ctx)               - 读取：缺失时返回零值
//	RequireXxx(ctx)        - 强制读取：缺失时返回错误
//
// # 生命周期
//
// context 值随请求结束自然失效。本包不持有任何 goroutine 级或全局可变状态，
// 因此不存在 worker 复用导致的跨请求泄漏。
package xctx
