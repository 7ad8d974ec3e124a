package xbind

import "context"

// Resource 是可携带租户属性的事务资源句柄。
type Resource interface {
	// TenantProperty 返回当前绑定的租户，ok 为 false 表示未绑定。
	TenantProperty(ctx context.Context) (tenant string, ok bool, err error)
	// SetTenantProperty 设置租户属性。
	SetTenantProperty(ctx context.Context, tenant string) error
}

// PropertyResource 是 Resource 的内存实现，零值可用。
// 与资源本身一样只在单个工作单元内使用，不是并发安全的。
type PropertyResource struct {
	tenant string
	set    bool
}

// NewPropertyResource 创建未绑定的内存资源。
func NewPropertyResource() *PropertyResource {
	return &PropertyResource{}
}

// TenantProperty 实现 Resource。
func (r *PropertyResource) TenantProperty(context.Context) (string, bool, error) {
	return r.tenant, r.set, nil
}

// SetTenantProperty 实现 Resource。
func (r *PropertyResource) SetTenantProperty(_ context.Context, tenant string) error {
	r.tenant = tenant
	r.set = true
	return nil
}

// Reset 清除绑定，工作单元结束后复用句柄时调用。
func (r *PropertyResource) Reset() {
	r.tenant = ""
	r.set = false
}
