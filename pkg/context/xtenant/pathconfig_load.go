package xtenant

import (
	"fmt"
	"regexp"

	"github.com/omeyang/xtenancy/pkg/config/xconf"
)

// ConfigKeyTenantPaths 是配置文件中路径规则列表的 key。
const ConfigKeyTenantPaths = "tenant_paths"

// PathRuleConfig 是路径规则的配置形式。
//
//	tenant_paths:
//	  - prefix: /api
//	    host_pattern: '^([a-z0-9-]+)\.example\.com$'
//	    tenant_group: 1
type PathRuleConfig struct {
	Prefix      string `koanf:"prefix" json:"prefix"`
	HostPattern string `koanf:"host_pattern" json:"host_pattern"`
	TenantGroup int    `koanf:"tenant_group" json:"tenant_group"`
}

// CompilePathConfig 编译配置形式的规则。
func CompilePathConfig(cfgs []PathRuleConfig) (*PathConfig, error) {
	rules := make([]PathRule, 0, len(cfgs))
	for _, rc := range cfgs {
		re, err := regexp.Compile(rc.HostPattern)
		if err != nil {
			return nil, fmt.Errorf("%w: prefix %q: %w", ErrInvalidPathRule, rc.Prefix, err)
		}
		rules = append(rules, PathRule{
			Prefix:      rc.Prefix,
			HostPattern: re,
			TenantGroup: rc.TenantGroup,
		})
	}
	return NewPathConfig(rules...)
}

// PathConfigFromConfig 从已加载的配置中读取 tenant_paths。
// 缺少该 key 时返回空规则集合。
func PathConfigFromConfig(cfg xconf.Config) (*PathConfig, error) {
	var cfgs []PathRuleConfig
	if cfg.Exists(ConfigKeyTenantPaths) {
		if err := cfg.Unmarshal(ConfigKeyTenantPaths, &cfgs); err != nil {
			return nil, err
		}
	}
	return CompilePathConfig(cfgs)
}

// LoadPathConfig 从 YAML/JSON 文件加载路径规则。
// 规则中出现未知字段时返回错误。
func LoadPathConfig(path string) (*PathConfig, error) {
	cfg, err := xconf.New(path, xconf.WithStrict())
	if err != nil {
		return nil, err
	}
	return PathConfigFromConfig(cfg)
}

// LoadPathConfigBytes 从字节数据加载路径规则。
func LoadPathConfigBytes(data []byte, format xconf.Format) (*PathConfig, error) {
	cfg, err := xconf.NewFromBytes(data, format, xconf.WithStrict())
	if err != nil {
		return nil, err
	}
	return PathConfigFromConfig(cfg)
}
