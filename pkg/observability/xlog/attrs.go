package xlog

import (
	"log/slog"

	"github.com/omeyang/xtenancy/pkg/context/xctx"
)

// 常用属性 Key
const (
	KeyError     = "error"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyTenantID  = xctx.KeyTenantID
	KeyLockKey   = "lock_key"
)

// Err 创建错误属性。err 为 nil 时返回空属性（会被 slog 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Component 创建组件名属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 创建操作名属性
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Tenant 创建租户属性，用于 context 中尚未写入租户的场景（如解析失败日志）。
func Tenant(id string) slog.Attr {
	return slog.String(KeyTenantID, id)
}

// LockKey 创建锁 key 属性
func LockKey(key string) slog.Attr {
	return slog.String(KeyLockKey, key)
}
