package xvendor

// Kind 查询结果分类
type Kind int

const (
	// LookupFailed 查询失败（零值）
	LookupFailed Kind = iota
	// Found 找到厂商
	Found
	// NotFound 服务端未登记该前缀
	NotFound
	// RateLimited 单次尝试被限流（HTTP 429）
	RateLimited
)

// String 返回用于日志和指标属性的名称
func (k Kind) String() string {
	switch k {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case RateLimited:
		return "rate_limited"
	default:
		return "lookup_failed"
	}
}

// 输出中使用的占位文本
const (
	TextNotFound     = "Not Found"
	TextLookupFailed = "Lookup Failed"
)

// Result 一次 Resolve 调用的结果
type Result struct {
	Kind Kind
	// Vendor 厂商名称，仅 Kind 为 Found 时有值
	Vendor string
	// Attempts 实际发出的 HTTP 请求数，缓存命中或未发请求时为 0
	Attempts int
	// Cached 结果来自本地缓存
	Cached bool
}

// Text 返回输出文本：厂商名称、"Not Found" 或 "Lookup Failed"。
func (r Result) Text() string {
	switch r.Kind {
	case Found:
		return r.Vendor
	case NotFound:
		return TextNotFound
	default:
		return TextLookupFailed
	}
}

// Terminal 报告结果是否为服务端给出的确定答复（可缓存）。
func (r Result) Terminal() bool {
	return r.Kind == Found || r.Kind == NotFound
}
