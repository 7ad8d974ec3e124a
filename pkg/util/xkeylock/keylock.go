package xkeylock

import "io"

// Handle 表示一次成功的锁获取。
type Handle interface {
	// Unlock 释放锁。
	// 幂等：第一次调用返回 nil，后续调用返回 [ErrLockNotHeld]。
	Unlock() error

	// Key 返回锁的 key，Unlock 之后仍返回原始值。
	Key() string
}

// Locker 提供基于 key 的进程内非阻塞互斥锁。
// 所有方法都是并发安全的。
type Locker interface {
	io.Closer

	// TryAcquire 非阻塞获取锁。
	// 锁被占用时返回 (nil, [ErrLockOccupied])。
	// Locker 已关闭时返回 (nil, [ErrClosed])。
	// key 为空字符串时返回 (nil, [ErrInvalidKey])。
	//
	// 锁不可重入：同一调用方对已持有的 key 再次 TryAcquire 同样返回 ErrLockOccupied。
	TryAcquire(key string) (Handle, error)

	// Held 报告 key 当前是否被持有（瞬时快照）。
	Held(key string) bool

	// Len 返回当前持有的 key 数量（单次原子读取，瞬时快照）。
	Len() int

	// Keys 返回当前持有的 key 列表，仅用于调试。
	// 不保证跨分片原子性。
	Keys() []string
}

// New 创建一个新的 Locker 实例。
// 配置无效时返回错误（如分片数不是 2 的幂）。
func New(opts ...Option) (Locker, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return newKeyLockImpl(&o), nil
}
