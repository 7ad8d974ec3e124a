// Package xdlock 提供基于 Redis 的非阻塞分布式锁。
//
// 底层使用 redsync：单节点为标准 Redis 锁，多节点使用 Redlock（需过半成功）。
// 只提供 TryLock，锁被占用时立即返回 (nil, nil)，不排队等待。
//
//	factory, err := xdlock.NewRedisFactory(client)
//	handle, err := factory.TryLock(ctx, "tenant:acme", xdlock.WithExpiry(30*time.Second))
//	if err != nil {
//		return err // Redis 异常
//	}
//	if handle == nil {
//		return errBusy // 被其他实例持有
//	}
//	defer handle.Unlock(ctx)
//
// 工作时间可能超过 Expiry 时，调用方需周期性 Extend，否则锁过期后可能被其他实例获取。
package xdlock
