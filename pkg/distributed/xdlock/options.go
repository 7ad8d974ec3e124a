package xdlock

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxKeyLength = 512

// validateKey 验证锁 key 是否有效。
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	if len(key) > maxKeyLength {
		return ErrKeyTooLong
	}
	return nil
}

// MutexOption 定义锁实例的配置选项。
type MutexOption func(*mutexOptions)

type mutexOptions struct {
	KeyPrefix     string        // Key 前缀，默认 "lock:"
	Expiry        time.Duration // 过期时间，默认 8s
	DriftFactor   float64       // 时钟漂移因子，默认 0.01
	TimeoutFactor float64       // 单节点超时因子，默认 0.05
	GenValueFunc  func() (string, error)
	SetNXOnExtend bool
}

func defaultMutexOptions() *mutexOptions {
	return &mutexOptions{
		KeyPrefix:     "lock:",
		Expiry:        8 * time.Second,
		DriftFactor:   0.01,
		TimeoutFactor: 0.05,
		GenValueFunc:  genUUIDValue,
	}
}

// genUUIDValue 生成 UUIDv4 锁值，便于在 Redis 中按值定位持有者。
func genUUIDValue() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// WithKeyPrefix 设置锁 key 的前缀，最终 key = prefix + key。
// 默认值："lock:"。
func WithKeyPrefix(prefix string) MutexOption {
	return func(o *mutexOptions) {
		o.KeyPrefix = prefix
	}
}

// WithExpiry 设置锁的过期时间，默认 8 秒。
// 过期时间应大于业务执行时间，否则需要调用 Extend 续期。
func WithExpiry(d time.Duration) MutexOption {
	return func(o *mutexOptions) {
		if d > 0 {
			o.Expiry = d
		}
	}
}

// WithDriftFactor 设置时钟漂移因子，默认 0.01。
func WithDriftFactor(f float64) MutexOption {
	return func(o *mutexOptions) {
		if f > 0 {
			o.DriftFactor = f
		}
	}
}

// WithTimeoutFactor 设置单节点请求超时占 Expiry 的比例，默认 0.05。
func WithTimeoutFactor(f float64) MutexOption {
	return func(o *mutexOptions) {
		if f > 0 {
			o.TimeoutFactor = f
		}
	}
}

// WithGenValueFunc 自定义锁值生成函数，默认 UUIDv4，nil 忽略。
func WithGenValueFunc(fn func() (string, error)) MutexOption {
	return func(o *mutexOptions) {
		if fn != nil {
			o.GenValueFunc = fn
		}
	}
}

// WithSetNXOnExtend 续期时若 key 已不存在则重新 SETNX。
func WithSetNXOnExtend(b bool) MutexOption {
	return func(o *mutexOptions) {
		o.SetNXOnExtend = b
	}
}
