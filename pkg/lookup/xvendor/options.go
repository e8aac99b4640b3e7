package xvendor

import (
	"strings"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/macconv/pkg/observability/xlog"
	"github.com/omeyang/macconv/pkg/resilience/xretry"
)

// 默认值
const (
	DefaultBaseURL     = "https://api.macvendors.com"
	DefaultTimeout     = 10 * time.Second
	DefaultMaxAttempts = 3
	DefaultUserAgent   = "macconv"
)

// maxBodySize 响应体读取上限
const maxBodySize = 64 * 1024

type options struct {
	doer          Doer
	baseURL       string
	token         string
	userAgent     string
	timeout       time.Duration
	maxAttempts   int
	backoff       xretry.BackoffPolicy
	logger        xlog.Logger
	cacheSize     int
	cacheTTL      time.Duration
	breakerN      int
	breakerWait   time.Duration
	meterProvider metric.MeterProvider
}

func defaultOptions() options {
	return options{
		baseURL:     DefaultBaseURL,
		userAgent:   DefaultUserAgent,
		timeout:     DefaultTimeout,
		maxAttempts: DefaultMaxAttempts,
		backoff:     xretry.NewNoBackoff(),
	}
}

// Option 配置 Client
type Option func(*options)

// WithDoer 注入 HTTP 传输。未设置时使用带超时的 *http.Client。
func WithDoer(d Doer) Option {
	return func(o *options) {
		if d != nil {
			o.doer = d
		}
	}
}

// WithBaseURL 替换服务地址（测试或镜像），末尾的 "/" 会被去掉。
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			o.baseURL = u
		}
	}
}

// WithToken 设置 Bearer 凭证，空字符串表示匿名访问。
func WithToken(token string) Option {
	return func(o *options) {
		o.token = strings.TrimSpace(token)
	}
}

// WithUserAgent 设置 User-Agent
func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithTimeout 设置默认 *http.Client 的超时，注入 Doer 时不生效。
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxAttempts 设置每次查询的最大尝试次数（含首次），小于 1 时按 1 处理。
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = max(n, 1)
	}
}

// WithBackoff 设置尝试之间的退避，默认不等待。
func WithBackoff(b xretry.BackoffPolicy) Option {
	return func(o *options) {
		if b != nil {
			o.backoff = b
		}
	}
}

// WithLogger 注入日志
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCache 启用结果缓存。size <= 0 关闭缓存，ttl <= 0 表示条目不过期。
func WithCache(size int, ttl time.Duration) Option {
	return func(o *options) {
		o.cacheSize = size
		o.cacheTTL = ttl
	}
}

// WithBreaker 启用熔断：连续 failures 次 LookupFailed 后打开，timeout 后半开。
// failures <= 0 关闭熔断。
func WithBreaker(failures int, timeout time.Duration) Option {
	return func(o *options) {
		o.breakerN = failures
		o.breakerWait = timeout
	}
}

// WithMeterProvider 设置指标 MeterProvider，默认使用 otel 全局 provider。
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}
