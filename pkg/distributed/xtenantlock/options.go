package xtenantlock

import (
	"github.com/omeyang/xtenancy/pkg/observability/xlog"
	"github.com/omeyang/xtenancy/pkg/observability/xmetrics"
)

// DefaultKeyPrefix 是租户锁 key 的默认前缀。
const DefaultKeyPrefix = "tenant:"

// Option 配置 Lock。
type Option func(*Lock)

// WithBackend 指定后端。默认为基于 xkeylock 的进程内后端。
func WithBackend(b Backend) Option {
	return func(l *Lock) {
		if b != nil {
			l.backend = b
		}
	}
}

// WithBusyError 指定锁被占用时返回的业务错误，nil 忽略。
func WithBusyError(err error) Option {
	return func(l *Lock) {
		if err != nil {
			l.busyErr = err
		}
	}
}

// WithKeyPrefix 设置锁 key 前缀，默认 "tenant:"。
func WithKeyPrefix(prefix string) Option {
	return func(l *Lock) {
		l.prefix = prefix
	}
}

// WithLogger 设置日志。占用以 Debug 级别记录，释放失败以 Warn 级别记录。
func WithLogger(logger xlog.Logger) Option {
	return func(l *Lock) {
		l.logger = logger
	}
}

// WithObserver 设置观测器。
func WithObserver(observer xmetrics.Observer) Option {
	return func(l *Lock) {
		l.observer = observer
	}
}
