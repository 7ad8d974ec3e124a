package xbind

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceConflict 资源已绑定到其他租户
	ErrResourceConflict = errors.New("xbind: resource bound to another tenant")

	// ErrEmptyTenant 租户为空
	ErrEmptyTenant = errors.New("xbind: empty tenant")

	// ErrNilResource 资源为 nil
	ErrNilResource = errors.New("xbind: nil resource")

	// ErrInvalidSetting Postgres 设置名非法，必须是 "namespace.name" 形式
	ErrInvalidSetting = errors.New("xbind: invalid setting name")
)

// ConflictError 记录冲突双方，errors.Is(err, ErrResourceConflict) 为 true。
type ConflictError struct {
	Bound     string
	Requested string
}

// Error 实现 error 接口。
func (e *ConflictError) Error() string {
	return fmt.Sprintf("xbind: resource bound to tenant %q, requested %q", e.Bound, e.Requested)
}

// Unwrap 返回 ErrResourceConflict。
func (e *ConflictError) Unwrap() error {
	return ErrResourceConflict
}
