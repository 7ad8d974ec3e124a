package xctx

import "errors"

// 设计决策: contextKey 使用 string 而非 int+iota：
// 包私有类型不会与其他包的 key 冲突，字符串值在调试时可读。
type contextKey string

var (
	// ErrNilContext 表示传入的 context 为 nil。
	ErrNilContext = errors.New("xctx: nil context")

	// ErrMissingTenantID tenant_id 缺失
	ErrMissingTenantID = errors.New("xctx: missing tenant_id")
)
