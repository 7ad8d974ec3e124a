// Package xconf 提供配置加载和解析功能，基于 koanf 实现。
//
// xconf 定位为最小化只读加载器，负责文件/字节数据的加载和反序列化。
// 实例创建后不可变：租户路径规则等配置在进程启动时加载一次，之后只读，
// 并发读取无需加锁。
//
// # 支持的格式
//
//   - YAML（默认，推荐）：.yaml, .yml
//   - JSON：.json
//
// # 使用示例
//
//	cfg, err := xconf.New("/etc/app/tenancy.yaml")
//	if err != nil {
//		return err
//	}
//	var rules []RuleConfig
//	if err := cfg.Unmarshal("tenant_paths", &rules); err != nil {
//		return err
//	}
package xconf
