package xtenantlock

import "errors"

var (
	// ErrLockUnavailable 租户锁被占用，未指定 WithBusyError 时返回。
	ErrLockUnavailable = errors.New("xtenantlock: tenant lock unavailable")

	// ErrEmptyTenant 租户为空。
	ErrEmptyTenant = errors.New("xtenantlock: empty tenant")

	// ErrNilWork work 为 nil。
	ErrNilWork = errors.New("xtenantlock: nil work")
)
