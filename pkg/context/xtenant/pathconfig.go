package xtenant

import (
	"fmt"
	"net"
	"regexp"
	"sort"
	"strings"
)

// =============================================================================
// 路径规则
// =============================================================================

// PathRule 描述某个路径前缀下如何从转发主机名中提取租户。
type PathRule struct {
	// Prefix 请求路径前缀，按路径段边界匹配。
	Prefix string
	// HostPattern 匹配转发主机名的正则。
	HostPattern *regexp.Regexp
	// TenantGroup 租户所在的捕获组序号，0 表示整个匹配。
	TenantGroup int
}

// Extract 从主机名中提取租户子串，不匹配时返回空字符串。
func (r PathRule) Extract(host string) string {
	if r.HostPattern == nil {
		return ""
	}
	m := r.HostPattern.FindStringSubmatch(host)
	if r.TenantGroup < 0 || r.TenantGroup >= len(m) {
		return ""
	}
	return m[r.TenantGroup]
}

func (r PathRule) validate() error {
	if r.Prefix == "" || r.Prefix[0] != '/' {
		return fmt.Errorf("%w: prefix %q must start with '/'", ErrInvalidPathRule, r.Prefix)
	}
	if r.HostPattern == nil {
		return fmt.Errorf("%w: prefix %q has no host pattern", ErrInvalidPathRule, r.Prefix)
	}
	if r.TenantGroup < 0 || r.TenantGroup > r.HostPattern.NumSubexp() {
		return fmt.Errorf("%w: prefix %q: group %d out of range (pattern has %d)",
			ErrInvalidPathRule, r.Prefix, r.TenantGroup, r.HostPattern.NumSubexp())
	}
	return nil
}

// matches 按路径段边界判断前缀："/api" 匹配 "/api" 与 "/api/x"，不匹配 "/apix"。
func (r PathRule) matches(path string) bool {
	if !strings.HasPrefix(path, r.Prefix) {
		return false
	}
	if len(path) == len(r.Prefix) || strings.HasSuffix(r.Prefix, "/") {
		return true
	}
	return path[len(r.Prefix)] == '/'
}

// PathConfig 是按路径前缀组织的租户提取规则集合。
// 构建后不可变，可被并发请求共享。
type PathConfig struct {
	rules []PathRule // 按前缀长度降序
}

// NewPathConfig 校验并构建规则集合。前缀重复返回 ErrInvalidPathRule。
func NewPathConfig(rules ...PathRule) (*PathConfig, error) {
	seen := make(map[string]struct{}, len(rules))
	sorted := make([]PathRule, 0, len(rules))
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.Prefix]; dup {
			return nil, fmt.Errorf("%w: duplicate prefix %q", ErrInvalidPathRule, r.Prefix)
		}
		seen[r.Prefix] = struct{}{}
		sorted = append(sorted, r)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &PathConfig{rules: sorted}, nil
}

// Match 返回最长匹配前缀的规则。nil 配置不匹配任何路径。
func (c *PathConfig) Match(path string) (PathRule, bool) {
	if c == nil {
		return PathRule{}, false
	}
	if path == "" {
		path = "/"
	}
	for _, r := range c.rules {
		if r.matches(path) {
			return r, true
		}
	}
	return PathRule{}, false
}

// Extract 用 path 对应的规则从转发主机名中提取租户子串。
//
// host 取逗号分隔的第一项并去除端口；没有规则或不匹配时返回空字符串。
func (c *PathConfig) Extract(path, host string) string {
	rule, ok := c.Match(path)
	if !ok {
		return ""
	}
	return rule.Extract(normalizeHost(host))
}

// Rules 返回规则副本，按匹配优先级排序。
func (c *PathConfig) Rules() []PathRule {
	if c == nil {
		return nil
	}
	out := make([]PathRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Len 返回规则数量。
func (c *PathConfig) Len() int {
	if c == nil {
		return 0
	}
	return len(c.rules)
}

func normalizeHost(host string) string {
	if i := strings.IndexByte(host, ','); i >= 0 {
		host = host[:i]
	}
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}
