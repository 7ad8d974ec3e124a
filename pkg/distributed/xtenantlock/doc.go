// Package xtenantlock 保证同一租户的临界区同一时刻最多只有一个执行者。
//
// 获取是非阻塞的：租户空闲时立即执行 work，被占用时立即返回调用方指定的
// busy 错误（默认 ErrLockUnavailable），不排队、不等待、不重试。
// 需要串行吞吐的调用方自行在外部重试。
//
//	lock, err := xtenantlock.New(xtenantlock.WithBusyError(errTenantBusy))
//	defer lock.Close()
//
//	report, err := xtenantlock.WithLock(ctx, lock, tenant, func(ctx context.Context) (Report, error) {
//		return buildReport(ctx, tenant)
//	})
//
// 锁在每条退出路径上释放且只释放一次：正常返回、work 返回错误、work panic、
// ctx 被取消。释放使用 context.WithoutCancel(ctx)，请求取消不会跳过释放。
//
// # 后端
//
//   - NewLocalBackend：进程内（xkeylock），默认
//   - NewDistributedBackend：跨进程（xdlock，Redis），需显式选择
package xtenantlock
