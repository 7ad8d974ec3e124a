package xtenantlock

import (
	"context"
	"errors"

	"github.com/omeyang/xtenancy/pkg/distributed/xdlock"
	"github.com/omeyang/xtenancy/pkg/util/xkeylock"
)

// ReleaseFunc 释放一次成功的获取。
type ReleaseFunc func(ctx context.Context) error

// Backend 是按 key 非阻塞加锁的后端。
type Backend interface {
	// TryAcquire 尝试获取 key。
	// 成功返回 (release, true, nil)；被占用返回 (nil, false, nil)；
	// 后端故障返回 error。
	TryAcquire(ctx context.Context, key string) (release ReleaseFunc, ok bool, err error)
}

// =============================================================================
// 进程内后端
// =============================================================================

type localBackend struct {
	locker xkeylock.Locker
}

// NewLocalBackend 基于 xkeylock 创建进程内后端。
func NewLocalBackend(locker xkeylock.Locker) Backend {
	return &localBackend{locker: locker}
}

func (b *localBackend) TryAcquire(_ context.Context, key string) (ReleaseFunc, bool, error) {
	h, err := b.locker.TryAcquire(key)
	if errors.Is(err, xkeylock.ErrLockOccupied) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return func(context.Context) error { return h.Unlock() }, true, nil
}

// =============================================================================
// 分布式后端
// =============================================================================

type distributedBackend struct {
	factory xdlock.Factory
	opts    []xdlock.MutexOption
}

// NewDistributedBackend 基于 xdlock 创建跨进程后端。
// opts 作用于每次 TryLock，例如 xdlock.WithExpiry。
//
// work 可能超过锁的 Expiry 时需要调大 Expiry，本后端不自动续期。
func NewDistributedBackend(factory xdlock.Factory, opts ...xdlock.MutexOption) Backend {
	return &distributedBackend{factory: factory, opts: opts}
}

func (b *distributedBackend) TryAcquire(ctx context.Context, key string) (ReleaseFunc, bool, error) {
	h, err := b.factory.TryLock(ctx, key, b.opts...)
	if err != nil {
		return nil, false, err
	}
	if h == nil {
		return nil, false, nil
	}
	return h.Unlock, true, nil
}
