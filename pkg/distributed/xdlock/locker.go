package xdlock

import "context"

// LockHandle 表示一次成功的锁获取。
//
// 每次 TryLock 成功都会返回一个新的 handle，内部封装唯一的锁值，
// 只有持有该 handle 才能释放或续期，不同获取之间互不干扰。
type LockHandle interface {
	// Unlock 释放锁。
	//
	// 返回 [ErrNotLocked] 表示锁已过期或被其他获取覆盖。
	// ctx 已取消时使用独立的清理上下文（5 秒超时）尽力完成解锁，
	// 避免锁残留到 TTL 到期。
	Unlock(ctx context.Context) error

	// Extend 按创建时的 Expiry 续期。
	//
	//   - nil: 续期成功
	//   - [ErrNotLocked]: 所有权已丢失
	//   - [ErrExtendFailed]: 续期操作失败，锁可能仍在
	Extend(ctx context.Context) error

	// Key 返回锁的完整 key（含前缀）。
	Key() string
}

// Factory 定义锁工厂接口。
type Factory interface {
	// TryLock 非阻塞获取锁。
	//
	// 成功返回 LockHandle；锁被占用返回 (nil, nil)；
	// Redis 不可用等异常返回 error。
	TryLock(ctx context.Context, key string, opts ...MutexOption) (LockHandle, error)

	// Close 关闭工厂，之后 TryLock 返回 ErrFactoryClosed。
	// 不关闭传入的 Redis 客户端；已持有的 handle 仍可 Unlock/Extend。
	Close(ctx context.Context) error

	// Health 对所有节点执行 PING。
	Health(ctx context.Context) error
}
