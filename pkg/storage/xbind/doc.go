// Package xbind 保证事务资源在一个工作单元内只绑定一个租户。
//
// Bind 是 check-then-set：
//   - 资源未绑定：写入租户
//   - 已绑定相同租户：无操作（同一工作单元内可重入）
//   - 已绑定其他租户：返回 ErrResourceConflict
//
// 资源句柄被假定只在单个工作单元内使用，Bind 本身不加锁。
// 冲突意味着资源被错误地跨租户共享（通常是连接池使用错误），
// 调用方应中止当前工作单元，不要重试。
//
// # 资源实现
//
//   - PropertyResource：内存实现，适合测试与非数据库资源
//   - PgxResource：事务级 Postgres 设置（set_config(..., true)），事务结束自动失效
//
// # 装饰器
//
// RunInTenantTx 先绑定再执行 fn；WithTenantTx 在 pgx 事务中完成绑定、执行、提交。
package xbind
