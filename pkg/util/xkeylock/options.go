package xkeylock

import "fmt"

const (
	// 表项只在持有期间存在，32 个分片足以摊薄高并发租户下的 map 锁竞争。
	defaultShardCount = 32
	maxShardCount     = 1 << 16
)

// Option 定义 Locker 可选配置。
type Option func(*options)

type options struct {
	maxKeys    int
	shardCount int
	shardMask  uint64 // 由 validate 计算，key 哈希与之按位与得到分片下标
}

func defaultOptions() options {
	return options{
		shardCount: defaultShardCount,
	}
}

// WithMaxKeys 限制同时被持有的 key 数量。
//
// 释放即删除表项，因此计数等于当前持有者数量，而非历史出现过的 key 数量。
// 达到上限时 TryAcquire 返回 [ErrMaxKeysExceeded]，与 key 被占用区分开。
// n <= 0 表示不限制（默认）。
func WithMaxKeys(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(o *options) {
		o.maxKeys = n
	}
}

// WithShardCount 设置分片数量，须为 2 的幂且不超过 65536，否则 New 返回
// [ErrInvalidShardCount]。默认 32。
//
// 分片越多 TryAcquire 之间的锁竞争越少，但 Keys 需要逐个加锁遍历分片，
// 开销随分片数线性增长。
func WithShardCount(n int) Option {
	return func(o *options) {
		o.shardCount = n
	}
}

func (o *options) validate() error {
	sc := o.shardCount
	if sc <= 0 || sc > maxShardCount || sc&(sc-1) != 0 {
		return fmt.Errorf("%w: need a power of 2 in [1, %d], got %d",
			ErrInvalidShardCount, maxShardCount, sc)
	}
	o.shardMask = uint64(sc - 1)
	return nil
}
