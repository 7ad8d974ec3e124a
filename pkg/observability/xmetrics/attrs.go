package xmetrics

import "github.com/omeyang/xtenancy/pkg/context/xctx"

// String 创建字符串属性。
func String(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Bool 创建布尔属性。
func Bool(key string, value bool) Attr {
	return Attr{Key: key, Value: value}
}

// Int 创建整数属性。
func Int(key string, value int) Attr {
	return Attr{Key: key, Value: value}
}

// Tenant 创建租户属性（仅用于 span，不进入指标维度）。
func Tenant(id string) Attr {
	return Attr{Key: xctx.KeyTenantID, Value: id}
}
