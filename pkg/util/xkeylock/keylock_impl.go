package xkeylock

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// keyLockImpl 是 Locker 的分片实现。
//
// 条目存在即表示被持有：TryAcquire 在分片锁内检查并插入，Unlock 在分片锁内删除。
// 不需要引用计数，也没有等待者。
type keyLockImpl struct {
	shards   []shard
	mask     uint64
	maxKeys  int64
	closed   atomic.Bool
	keyCount atomic.Int64
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*handle
}

// handle 实现 Handle 接口。
type handle struct {
	kl   *keyLockImpl
	key  string
	done atomic.Bool
}

func newKeyLockImpl(opts *options) *keyLockImpl {
	shards := make([]shard, opts.shardCount)
	for i := range shards {
		shards[i].entries = make(map[string]*handle)
	}
	return &keyLockImpl{
		shards:  shards,
		mask:    opts.shardMask,
		maxKeys: int64(opts.maxKeys),
	}
}

func (kl *keyLockImpl) getShard(key string) *shard {
	return &kl.shards[xxhash.Sum64String(key)&kl.mask]
}

func (kl *keyLockImpl) TryAcquire(key string) (Handle, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	if kl.closed.Load() {
		return nil, ErrClosed
	}

	s := kl.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	// 持有分片锁后再检查一次，避免与 Close 竞争时仍插入新条目。
	if kl.closed.Load() {
		return nil, ErrClosed
	}
	if _, held := s.entries[key]; held {
		return nil, ErrLockOccupied
	}
	if kl.maxKeys > 0 {
		// 使用 CAS 严格限制 key 数量，避免跨分片并发突破上限。
		for {
			cur := kl.keyCount.Load()
			if cur >= kl.maxKeys {
				return nil, ErrMaxKeysExceeded
			}
			if kl.keyCount.CompareAndSwap(cur, cur+1) {
				break
			}
		}
	} else {
		kl.keyCount.Add(1)
	}

	h := &handle{kl: kl, key: key}
	s.entries[key] = h
	return h, nil
}

func (kl *keyLockImpl) Held(key string) bool {
	s := kl.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok
}

func (kl *keyLockImpl) Len() int {
	return int(max(kl.keyCount.Load(), 0))
}

func (kl *keyLockImpl) Keys() []string {
	keys := make([]string, 0, kl.Len())
	for i := range kl.shards {
		s := &kl.shards[i]
		s.mu.Lock()
		for k := range s.entries {
			keys = append(keys, k)
		}
		s.mu.Unlock()
	}
	return keys
}

func (kl *keyLockImpl) Close() error {
	if !kl.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return nil
}

// release 只删除自己插入的条目。
func (kl *keyLockImpl) release(h *handle) {
	s := kl.getShard(h.key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[h.key] == h {
		delete(s.entries, h.key)
		kl.keyCount.Add(-1)
	}
}

// handle 方法

func (h *handle) Unlock() error {
	if !h.done.CompareAndSwap(false, true) {
		return ErrLockNotHeld
	}
	h.kl.release(h)
	return nil
}

func (h *handle) Key() string {
	return h.key
}

// 编译期接口检查。
var (
	_ Locker = (*keyLockImpl)(nil)
	_ Handle = (*handle)(nil)
)
