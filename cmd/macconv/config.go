package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/macconv/pkg/batch/xbatch"
	"github.com/omeyang/macconv/pkg/config/xconf"
	"github.com/omeyang/macconv/pkg/lookup/xvendor"
	"github.com/omeyang/macconv/pkg/observability/xlog"
	"github.com/omeyang/macconv/pkg/resilience/xretry"
)

// tokenEnv 提供 API token 的环境变量
const tokenEnv = "MACVENDORS_TOKEN"

// config 运行配置。优先级：默认值 < 配置文件 < 环境变量 < 命令行参数。
type config struct {
	Separator string       `koanf:"separator"`
	Lowercase bool         `koanf:"lowercase"`
	Vendor    vendorConfig `koanf:"vendor"`
	Log       logConfig    `koanf:"log"`
}

type vendorConfig struct {
	Enabled           bool          `koanf:"enabled"`
	Token             string        `koanf:"token"`
	BaseURL           string        `koanf:"base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxAttempts       int           `koanf:"max_attempts"`
	Backoff           time.Duration `koanf:"backoff"`
	BackoffMax        time.Duration `koanf:"backoff_max"`
	PaceAnonymous     time.Duration `koanf:"pace_anonymous"`
	PaceAuthenticated time.Duration `koanf:"pace_authenticated"`
	CacheSize         int           `koanf:"cache_size"`
	CacheTTL          time.Duration `koanf:"cache_ttl"`
	BreakerFailures   int           `koanf:"breaker_failures"`
	BreakerTimeout    time.Duration `koanf:"breaker_timeout"`
}

type logConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

func defaultConfig() config {
	return config{
		Separator: xbatch.DefaultSeparator,
		Vendor: vendorConfig{
			BaseURL:           xvendor.DefaultBaseURL,
			Timeout:           xvendor.DefaultTimeout,
			MaxAttempts:       xvendor.DefaultMaxAttempts,
			PaceAnonymous:     xbatch.DefaultPaceAnonymous,
			PaceAuthenticated: xbatch.DefaultPaceAuthenticated,
			CacheSize:         1024,
			BreakerTimeout:    30 * time.Second,
		},
		Log: logConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// loadConfig 依次叠加默认值、配置文件（path 非空时）和环境变量。
func loadConfig(path string, getenv func(string) string) (config, error) {
	cfg := defaultConfig()
	if strings.TrimSpace(path) != "" {
		c, err := xconf.New(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := c.Unmarshal("", &cfg); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}
	if token := strings.TrimSpace(getenv(tokenEnv)); token != "" {
		cfg.Vendor.Token = token
	}
	return cfg, nil
}

// applyFlags 用显式给出的命令行参数覆盖配置
func (c *config) applyFlags(cmd *cli.Command) {
	if cmd.IsSet("separator") {
		c.Separator = cmd.String("separator")
	}
	if cmd.IsSet("lower") {
		c.Lowercase = cmd.Bool("lower")
	}
	if cmd.IsSet("api") {
		c.Vendor.Enabled = cmd.Bool("api")
	}
	if cmd.IsSet("token") {
		c.Vendor.Token = strings.TrimSpace(cmd.String("token"))
	}
}

func (c config) vendorOptions(logger xlog.Logger) []xvendor.Option {
	opts := []xvendor.Option{
		xvendor.WithBaseURL(c.Vendor.BaseURL),
		xvendor.WithToken(c.Vendor.Token),
		xvendor.WithUserAgent("macconv/" + Version),
		xvendor.WithTimeout(c.Vendor.Timeout),
		xvendor.WithMaxAttempts(c.Vendor.MaxAttempts),
		xvendor.WithCache(c.Vendor.CacheSize, c.Vendor.CacheTTL),
		xvendor.WithBreaker(c.Vendor.BreakerFailures, c.Vendor.BreakerTimeout),
		xvendor.WithLogger(logger),
	}
	if b := c.Vendor.backoffPolicy(); b != nil {
		opts = append(opts, xvendor.WithBackoff(b))
	}
	return opts
}

// backoffPolicy 尝试间的退避。backoff <= 0 不等待；backoff_max 大于 backoff 时
// 从 backoff 起指数增长到 backoff_max，否则固定等待 backoff。
func (v vendorConfig) backoffPolicy() xretry.BackoffPolicy {
	switch {
	case v.Backoff <= 0:
		return nil
	case v.BackoffMax > v.Backoff:
		return xretry.NewExponentialBackoff(
			xretry.WithInitialDelay(v.Backoff),
			xretry.WithMaxDelay(v.BackoffMax))
	default:
		return xretry.NewFixedBackoff(v.Backoff)
	}
}

func (c config) batchOptions(logger xlog.Logger, progress xbatch.Progress) []xbatch.Option {
	return []xbatch.Option{
		xbatch.WithSeparator(c.Separator),
		xbatch.WithLowercase(c.Lowercase),
		xbatch.WithVendorLookup(c.Vendor.Enabled),
		xbatch.WithAuthenticated(c.Vendor.Token != ""),
		xbatch.WithPacing(c.Vendor.PaceAnonymous, c.Vendor.PaceAuthenticated),
		xbatch.WithProgress(progress),
		xbatch.WithLogger(logger),
	}
}

// newLogger 按日志配置构建 Logger。verbose/debug 覆盖配置中的级别。
// 设置了 log.file 时日志写入轮转文件，否则写入 stderr。
func newLogger(lc logConfig, verbose, debug bool, stderr io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	level, err := xlog.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	b := xlog.New().
		SetOutput(stderr).
		SetLevel(xlog.LevelFromFlags(verbose, debug, level)).
		SetFormat(lc.Format).
		SetReplaceAttr(xlog.RedactKeys("token"))
	if strings.TrimSpace(lc.File) != "" {
		b.SetRotation(lc.File, xlog.RotationOptions{})
	}
	return b.Build()
}
