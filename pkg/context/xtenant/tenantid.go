package xtenant

import (
	"fmt"
	"strings"
)

// TenantID 是规范化（小写）后的租户标识。
// 零值表示没有租户。
type TenantID string

// String 返回租户标识字符串。
func (id TenantID) String() string {
	return string(id)
}

// IsZero 报告是否为空租户。
func (id TenantID) IsZero() bool {
	return id == ""
}

// IsValidTenantID 报告 s 是否满足租户字符集 ^[a-zA-Z0-9.-]+$。
//
// 设计决策: 逐字节扫描而非正则，每个请求都会调用；与正则的等价性由 fuzz 测试保证。
func IsValidTenantID(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-':
		default:
			return false
		}
	}
	return true
}

// NormalizeTenantID 校验并转换为小写 TenantID。
// 不满足字符集时返回包装 ErrInvalidTenantFormat 的错误。
func NormalizeTenantID(s string) (TenantID, error) {
	if !IsValidTenantID(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTenantFormat, s)
	}
	return TenantID(strings.ToLower(s)), nil
}
