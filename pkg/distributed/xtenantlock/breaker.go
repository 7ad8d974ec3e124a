package xtenantlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrBackendOpen 后端熔断中，获取被直接拒绝。
var ErrBackendOpen = errors.New("xtenantlock: backend circuit open")

type acquireResult struct {
	release ReleaseFunc
	ok      bool
}

type breakerBackend struct {
	next Backend
	cb   *gobreaker.CircuitBreaker[acquireResult]
}

// BreakerOption 配置熔断后端。
type BreakerOption func(*gobreaker.Settings)

// WithBreakerFailures 连续 n 次后端故障后熔断，默认 5。
func WithBreakerFailures(n uint32) BreakerOption {
	return func(st *gobreaker.Settings) {
		if n > 0 {
			st.ReadyToTrip = func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= n
			}
		}
	}
}

// WithBreakerTimeout 熔断后进入半开状态前的等待时间，默认 30s。
func WithBreakerTimeout(d time.Duration) BreakerOption {
	return func(st *gobreaker.Settings) {
		if d > 0 {
			st.Timeout = d
		}
	}
}

// WithBreakerStateChange 设置状态变化回调。
func WithBreakerStateChange(fn func(name string, from, to gobreaker.State)) BreakerOption {
	return func(st *gobreaker.Settings) {
		st.OnStateChange = fn
	}
}

// NewBreakerBackend 用熔断器包装后端：后端持续故障时快速失败，不再逐次等待超时。
//
// 只有后端错误计入失败；锁被占用是正常结果，不影响熔断状态。
// 熔断期间返回的错误同时匹配 ErrBackendOpen 与 gobreaker.ErrOpenState。
func NewBreakerBackend(name string, next Backend, opts ...BreakerOption) Backend {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// 调用方取消不代表后端故障
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&st)
		}
	}
	return &breakerBackend{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[acquireResult](st),
	}
}

func (b *breakerBackend) TryAcquire(ctx context.Context, key string) (ReleaseFunc, bool, error) {
	res, err := b.cb.Execute(func() (acquireResult, error) {
		release, ok, err := b.next.TryAcquire(ctx, key)
		return acquireResult{release: release, ok: ok}, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, false, fmt.Errorf("%w: %w", ErrBackendOpen, err)
	}
	if err != nil {
		return nil, false, err
	}
	return res.release, res.ok, nil
}
