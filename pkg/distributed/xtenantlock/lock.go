package xtenantlock

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/omeyang/xtenancy/pkg/context/xtenant"
	"github.com/omeyang/xtenancy/pkg/observability/xlog"
	"github.com/omeyang/xtenancy/pkg/observability/xmetrics"
	"github.com/omeyang/xtenancy/pkg/util/xkeylock"
)

// Lock 是按租户的非阻塞互斥锁，可并发使用。
type Lock struct {
	backend  Backend
	busyErr  error
	prefix   string
	logger   xlog.Logger
	observer xmetrics.Observer

	// owned 是 New 内部创建的 xkeylock，Close 时关闭。
	owned io.Closer
}

// New 创建 Lock。未指定 WithBackend 时创建进程内后端。
func New(opts ...Option) (*Lock, error) {
	l := &Lock{
		busyErr: ErrLockUnavailable,
		prefix:  DefaultKeyPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.backend == nil {
		locker, err := xkeylock.New()
		if err != nil {
			return nil, err
		}
		l.backend = NewLocalBackend(locker)
		l.owned = locker
	}
	return l, nil
}

// Close 关闭 New 内部创建的进程内后端；外部传入的后端由调用方管理。
func (l *Lock) Close() error {
	if l.owned == nil {
		return nil
	}
	err := l.owned.Close()
	if errors.Is(err, xkeylock.ErrClosed) {
		return nil
	}
	return err
}

// Do 在持有 tenant 锁时执行 work。
func (l *Lock) Do(ctx context.Context, tenant xtenant.TenantID, work func(ctx context.Context) error) error {
	if work == nil {
		return ErrNilWork
	}
	_, err := WithLock(ctx, l, tenant, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	})
	return err
}

// WithLock 在持有 tenant 锁时执行 work 并返回其结果。
//
// 锁被占用时立即返回 busy 错误，work 不执行。
// 获取成功后无论 work 返回、出错还是 panic 都会释放锁；
// 释放失败时与 work 的错误合并返回。
func WithLock[T any](ctx context.Context, l *Lock, tenant xtenant.TenantID, work func(ctx context.Context) (T, error)) (result T, err error) {
	if work == nil {
		return result, ErrNilWork
	}
	if tenant == "" {
		return result, ErrEmptyTenant
	}
	// 大小写不同的写法视为同一租户，共用一把锁
	id, err := xtenant.NormalizeTenantID(tenant.String())
	if err != nil {
		return result, fmt.Errorf("xtenantlock: %w", err)
	}

	ctx, span := xmetrics.Start(ctx, l.observer, xmetrics.SpanOptions{
		Component: "xtenantlock",
		Operation: "with_lock",
		Attrs:     []xmetrics.Attr{xmetrics.Tenant(id.String())},
	})
	busy := false
	defer func() {
		if busy {
			span.End(xmetrics.Result{Status: xmetrics.StatusRejected})
			return
		}
		span.End(xmetrics.Result{Err: err})
	}()

	key := l.prefix + id.String()
	release, ok, err := l.backend.TryAcquire(ctx, key)
	if err != nil {
		return result, fmt.Errorf("xtenantlock: acquire %q: %w", key, err)
	}
	if !ok {
		busy = true
		if l.logger != nil {
			l.logger.Debug(ctx, "tenant lock busy", xlog.Component("xtenantlock"), xlog.LockKey(key))
		}
		return result, l.busyErr
	}

	defer func() {
		// 请求被取消时仍需释放
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			if l.logger != nil {
				l.logger.Warn(ctx, "tenant lock release failed",
					xlog.Component("xtenantlock"), xlog.LockKey(key), xlog.Err(rerr))
			}
			err = errors.Join(err, fmt.Errorf("xtenantlock: release %q: %w", key, rerr))
		}
	}()

	return work(ctx)
}
