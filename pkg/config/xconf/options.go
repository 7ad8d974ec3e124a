package xconf

// options 配置加载选项。
type options struct {
	delim  string
	tag    string
	strict bool
}

// Option 定义配置选项函数类型。
type Option func(*options)

func defaultOptions() *options {
	return &options{
		delim: ".",
		tag:   "koanf",
	}
}

// WithDelim 设置配置键分隔符，默认 "."，空值忽略。
func WithDelim(delim string) Option {
	return func(o *options) {
		if delim != "" {
			o.delim = delim
		}
	}
}

// WithTag 设置 Unmarshal 使用的结构体标签名，默认 "koanf"，空值忽略。
func WithTag(tag string) Option {
	return func(o *options) {
		if tag != "" {
			o.tag = tag
		}
	}
}

// WithStrict 启用严格反序列化：配置中存在目标结构体没有的字段时 Unmarshal 失败。
// 用于尽早发现拼写错误的配置键（如 host_patern）。
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}
