package xbatch

import (
	"time"

	"github.com/omeyang/macconv/pkg/observability/xlog"
)

// 默认值
const (
	DefaultSeparator         = "-"
	DefaultPaceAnonymous     = 900 * time.Millisecond
	DefaultPaceAuthenticated = 150 * time.Millisecond
)

// Option 配置 Processor
type Option func(*Processor)

// WithSeparator 设置地址分隔符，原样插入，可以为空。
func WithSeparator(sep string) Option {
	return func(p *Processor) { p.separator = sep }
}

// WithLowercase 输出小写十六进制
func WithLowercase(lower bool) Option {
	return func(p *Processor) { p.lowercase = lower }
}

// WithVendorLookup 启用厂商查询，输出行追加厂商字段。
func WithVendorLookup(enabled bool) Option {
	return func(p *Processor) { p.lookup = enabled }
}

// WithAuthenticated 查询带凭证，使用较短的节奏间隔。
func WithAuthenticated(auth bool) Option {
	return func(p *Processor) { p.authenticated = auth }
}

// WithPacing 覆盖匿名与带凭证时的节奏间隔，负值按 0 处理。
func WithPacing(anonymous, authenticated time.Duration) Option {
	return func(p *Processor) {
		p.paceAnonymous = max(anonymous, 0)
		p.paceAuth = max(authenticated, 0)
	}
}

// WithProgress 设置进度接收者
func WithProgress(pr Progress) Option {
	return func(p *Processor) {
		if pr != nil {
			p.progress = pr
		}
	}
}

// WithPacer 替换节奏等待实现
func WithPacer(pc Pacer) Option {
	return func(p *Processor) {
		if pc != nil {
			p.pacer = pc
		}
	}
}

// WithLogger 注入日志
func WithLogger(l xlog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}
