package xconf

import "errors"

// 配置只在启动时加载一次，以下错误均在 New/NewFromBytes/Unmarshal 返回，
// 调用方通常直接终止启动。
var (
	// ErrEmptyPath 表示未提供配置文件路径。
	ErrEmptyPath = errors.New("xconf: empty config path")

	// ErrUnsupportedFormat 表示扩展名或显式格式不是 yaml/json。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 表示读取配置文件失败，包装底层 I/O 错误。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 表示 yaml/json 语法错误。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 表示配置无法映射到目标结构体。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")

	// ErrUnknownField 表示严格模式下配置含目标结构体未声明的字段，
	// 常见于租户路径规则的字段拼写错误。总是与 ErrUnmarshalFailed 一同返回。
	ErrUnknownField = errors.New("xconf: unknown config field")
)
